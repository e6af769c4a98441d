package create_booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/servihogar-turnos/internal/domain"
	"github.com/m04kA/servihogar-turnos/pkg/ptr"
)

func TestValidateRequest_LengthsCountCharacters(t *testing.T) {
	// "ñ" занимает два байта, но считается одним символом
	req := clientRequest()
	req.Address = strings.Repeat("ñ", domain.MaxAddressLength)
	req.Observations = ptr.Ptr(strings.Repeat("é", domain.MaxObservationsLength))
	assert.NoError(t, validateRequest(req))

	req = clientRequest()
	req.Address = strings.Repeat("ñ", domain.MaxAddressLength+1)
	assert.ErrorIs(t, validateRequest(req), domain.ErrValidation)

	req = clientRequest()
	req.Observations = ptr.Ptr(strings.Repeat("é", domain.MaxObservationsLength+1))
	assert.ErrorIs(t, validateRequest(req), domain.ErrValidation)
}
