package pipeline

import (
	"errors"
	"runtime"
	"sync"

	"github.com/ecopia-map/city_tiler/internal/grouping"
	"github.com/ecopia-map/city_tiler/internal/lod"
)

// Builds the chain of every group with numConsumers consumers, one per CPU when
// numConsumers is not positive. Chains are returned in group order.
func BuildChains(groups []*grouping.Group, levels []lod.Level, keepTexture bool, numConsumers int) ([]*lod.Node, error) {
	if numConsumers <= 0 {
		numConsumers = runtime.NumCPU()
	}
	results := make([]*lod.Node, len(groups))

	// init channel where to submit work with a buffer 5 times greater than the number of consumers
	workChannel := make(chan *WorkUnit, numConsumers*5)

	// buffered so that every consumer can report its error without blocking
	errorChannel := make(chan error, numConsumers)

	var waitGroup sync.WaitGroup

	waitGroup.Add(1)
	go NewStandardProducer().Produce(workChannel, &waitGroup, groups)

	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := NewStandardConsumer(levels, keepTexture, results)
		go consumer.Consume(workChannel, errorChannel, &waitGroup)
	}

	// wait for producers and consumers to finish
	waitGroup.Wait()
	close(errorChannel)

	var errs []error
	for err := range errorChannel {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return results, nil
}
