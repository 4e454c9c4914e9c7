package pipeline

import (
	"sync"

	"github.com/ecopia-map/city_tiler/internal/grouping"
)

type Producer interface {
	Produce(work chan *WorkUnit, wg *sync.WaitGroup, groups []*grouping.Group)
}

type Consumer interface {
	Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup)
}
