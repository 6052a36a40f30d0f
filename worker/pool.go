package worker // import "github.com/homeshelf/homeshelf/worker"

import (
	"github.com/homeshelf/homeshelf/model"
)

type WorkPool interface {
	Push(job model.LookupJob)
}
