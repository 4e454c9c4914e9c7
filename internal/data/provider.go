package data

import "fmt"

// Capability implemented by input adapters (databases, GeoJSON readers, tileset readers).
// The engine never branches on the concrete adapter type.
type GeometryProvider interface {
	ProvideGeometry(id string) (*Feature, error)
}

// Asks the provider for each id in order and collects the results in a FeatureList
func CollectFeatures(provider GeometryProvider, ids []string, materials ...Material) (*FeatureList, error) {
	features := make([]*Feature, 0, len(ids))
	for _, id := range ids {
		feature, err := provider.ProvideGeometry(id)
		if err != nil {
			return nil, fmt.Errorf("providing geometry of [%s]: %w", id, err)
		}
		if feature == nil {
			continue
		}
		features = append(features, feature)
	}
	return NewFeatureList(features, materials...), nil
}
