package sizing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	metricsv "k8s.io/metrics/pkg/client/clientset/versioned"
)

// KubernetesSource sizes from a node's reported capacity, or from the
// metrics-server usage of that node
type KubernetesSource struct {
	clientset     kubernetes.Interface
	metricsClient metricsv.Interface
	headroom      float64
	logger        zerolog.Logger
}

// NewKubernetesSource connects using a kubeconfig path; empty uses in-cluster defaults
func NewKubernetesSource(kubeconfig string, headroom float64, logger zerolog.Logger) (*KubernetesSource, error) {
	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	metricsClient, err := metricsv.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics client: %w", err)
	}

	return NewKubernetesSourceFromClients(clientset, metricsClient, headroom, logger), nil
}

// NewKubernetesSourceFromClients uses existing clients. metricsClient may be
// nil, in which case usage mode is unavailable.
func NewKubernetesSourceFromClients(clientset kubernetes.Interface, metricsClient metricsv.Interface, headroom float64, logger zerolog.Logger) *KubernetesSource {
	return &KubernetesSource{
		clientset:     clientset,
		metricsClient: metricsClient,
		headroom:      headroom,
		logger:        logger.With().Str("source", "kubernetes").Logger(),
	}
}

func (k *KubernetesSource) Name() string {
	return "kubernetes"
}

// Specification sizes the named node
func (k *KubernetesSource) Specification(ctx context.Context, nodeName string, mode Mode) (*Result, error) {
	node, err := k.clientset.CoreV1().Nodes().Get(ctx, nodeName, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get node %s: %w", nodeName, err)
	}

	capacity := node.Status.Capacity
	m := measurement{
		cores:        float64(capacity.Cpu().MilliValue()) / 1000.0,
		memoryBytes:  float64(capacity.Memory().Value()),
		storageBytes: float64(capacity.StorageEphemeral().Value()),
	}
	headroom := 1.0

	if mode == ModeUsage {
		if k.metricsClient == nil {
			return nil, fmt.Errorf("usage sizing needs metrics-server")
		}
		nodeMetrics, err := k.metricsClient.MetricsV1beta1().NodeMetricses().Get(ctx, nodeName, metav1.GetOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics for node %s: %w", nodeName, err)
		}
		m.cores = float64(nodeMetrics.Usage.Cpu().MilliValue()) / 1000.0
		m.memoryBytes = float64(nodeMetrics.Usage.Memory().Value())
		headroom = k.headroom
	}

	provider, region := DetectHostingProvider(node)

	k.logger.Debug().
		Str("node", nodeName).
		Str("mode", string(mode)).
		Float64("cores", m.cores).
		Float64("memory_bytes", m.memoryBytes).
		Float64("storage_bytes", m.storageBytes).
		Str("hosting_provider", provider).
		Msg("Sized node")

	return &Result{
		Target:          nodeName,
		Source:          k.Name(),
		Mode:            mode,
		Specification:   m.toSpec(headroom),
		HostingProvider: provider,
		Region:          region,
		CollectedAt:     time.Now(),
	}, nil
}

// ListNodes returns the names of Ready nodes, the targets Specification accepts
func (k *KubernetesSource) ListNodes(ctx context.Context) ([]string, error) {
	nodes, err := k.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	names := make([]string, 0, len(nodes.Items))
	for _, node := range nodes.Items {
		if isReady(&node) {
			names = append(names, node.Name)
		}
	}
	return names, nil
}

func isReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
