package pipeline

import (
	"sync"

	"github.com/ecopia-map/city_tiler/internal/grouping"
)

type StandardProducer struct{}

func NewStandardProducer() Producer {
	return &StandardProducer{}
}

// Submits a WorkUnit per group to the provided work channel, in group order.
// Closes the channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup, groups []*grouping.Group) {
	for i, group := range groups {
		work <- &WorkUnit{
			Index: i,
			Group: group,
		}
	}
	close(work)
	wg.Done()
}
