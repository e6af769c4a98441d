package promotion

import (
	"github.com/m04kA/servihogar-turnos/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
