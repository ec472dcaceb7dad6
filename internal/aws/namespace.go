package aws

import "context"

// NamespaceDetector is the reserved slot for EKS namespace hygiene. Deciding
// that a Kubernetes namespace is empty requires cluster credentials and a
// Kubernetes API round trip, which is environment-specific; to avoid false
// positives this detector deliberately reports nothing. It is kept in the
// detector sequence so the gap is visible, not silently omitted.
type NamespaceDetector struct {
	region string
}

// NewNamespaceDetector creates the no-op namespace detector.
func NewNamespaceDetector(region string) *NamespaceDetector {
	return &NamespaceDetector{region: region}
}

// Type returns the resource class this detector reports.
func (d *NamespaceDetector) Type() ResourceType {
	return ResourceEKSNamespace
}

// Scan always returns no findings.
func (d *NamespaceDetector) Scan(_ context.Context, _ ScanConfig) ([]Finding, error) {
	return nil, nil
}
