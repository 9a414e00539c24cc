//go:build tools

package tools

// Mocks under pkg/*/mocks are generated by an installed mockery v3 binary
// from .mockery.yaml. Run mockery from the module root after changing
// persistence.Namespace, persistence.Partition, pairing.Link,
// pairing.OwnerStore or discovery.Advertiser.
