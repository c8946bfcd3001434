package sizing

import (
	"strings"

	corev1 "k8s.io/api/core/v1"
)

// DetectHostingProvider reports which cloud a node runs on, from its provider
// ID first and well-known labels second. Unknown hosts return "on-prem".
func DetectHostingProvider(node *corev1.Node) (string, string) {
	labels := node.Labels
	region := extractRegion(labels)

	if providerID := node.Spec.ProviderID; providerID != "" {
		if strings.HasPrefix(providerID, "azure://") {
			return "azure", region
		}
		if strings.HasPrefix(providerID, "aws://") {
			return "aws", region
		}
		if strings.HasPrefix(providerID, "gce://") {
			return "gcp", region
		}
	}

	if _, exists := labels["kubernetes.azure.com/cluster"]; exists {
		return "azure", region
	}
	if _, exists := labels["eks.amazonaws.com/nodegroup"]; exists {
		return "aws", region
	}
	if _, exists := labels["cloud.google.com/gke-nodepool"]; exists {
		return "gcp", region
	}

	return "on-prem", region
}

func extractRegion(labels map[string]string) string {
	if region, exists := labels["topology.kubernetes.io/region"]; exists {
		return region
	}
	if region, exists := labels["failure-domain.beta.kubernetes.io/region"]; exists {
		return region
	}
	return ""
}
