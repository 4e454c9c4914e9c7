package pipeline

import (
	"fmt"
	"sync"

	"github.com/ecopia-map/city_tiler/internal/lod"
	"github.com/golang/glog"
)

type StandardConsumer struct {
	levels      []lod.Level
	keepTexture bool
	results     []*lod.Node
}

// Builds a consumer writing the chain of the unit at index i into results[i]. Distinct
// consumers may share results as every index is produced once.
func NewStandardConsumer(levels []lod.Level, keepTexture bool, results []*lod.Node) Consumer {
	return &StandardConsumer{
		levels:      levels,
		keepTexture: keepTexture,
		results:     results,
	}
}

// Continually consumes WorkUnits submitted to a work channel building the corresponding chains.
// Continues working until the work channel is closed or an error is raised. In this last case
// submits the error to the error channel, then drains the work channel so the producer never blocks.
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	for work := range workchan {
		if err := c.doWork(work); err != nil {
			glog.Warningf("chain of group %d failed: %v", work.Index, err)
			errchan <- err
			for range workchan {
			}
			return
		}
	}
}

func (c *StandardConsumer) doWork(workUnit *WorkUnit) error {
	if workUnit.Index < 0 || workUnit.Index >= len(c.results) {
		return fmt.Errorf("work unit index %d out of %d result slots", workUnit.Index, len(c.results))
	}

	chain, err := lod.BuildChain(workUnit.Group, c.levels, c.keepTexture)
	if err != nil {
		return fmt.Errorf("group %d: %w", workUnit.Index, err)
	}
	c.results[workUnit.Index] = chain
	return nil
}
