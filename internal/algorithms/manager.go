package algorithms

import (
	"fmt"
	"sort"
	"sync"

	"wavelet-denoiser/internal/algorithms/bayesshrink"
	"wavelet-denoiser/internal/algorithms/neighshrink"
	"wavelet-denoiser/internal/algorithms/visushrink"
	"wavelet-denoiser/internal/device"
	"wavelet-denoiser/internal/logger"
	"wavelet-denoiser/internal/wavelet"
)

// Manager owns the policy registry and the shared device pool. All
// registered policies run against the same transform collaborator.
type Manager struct {
	algorithms map[string]Algorithm
	parameters map[string]map[string]interface{}
	pool       *device.Pool
	mu         sync.RWMutex
}

func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop{}
	}

	manager := &Manager{
		algorithms: make(map[string]Algorithm),
		parameters: make(map[string]map[string]interface{}),
		pool:       device.NewPool(8),
	}

	manager.registerAlgorithms(log)
	manager.initializeDefaultParameters()

	return manager
}

func (m *Manager) registerAlgorithms(log logger.Logger) {
	transform := wavelet.NewHaar()

	for _, alg := range []Algorithm{
		visushrink.NewProcessor(transform, m.pool, log),
		neighshrink.NewProcessor(transform, m.pool, log),
		neighshrink.NewModifiedProcessor(transform, m.pool, log),
		bayesshrink.NewProcessor(transform, m.pool, log),
	} {
		m.algorithms[alg.GetName()] = alg
	}
}

func (m *Manager) initializeDefaultParameters() {
	for name, algorithm := range m.algorithms {
		m.parameters[name] = algorithm.GetDefaultParameters()
	}
}

func (m *Manager) GetAlgorithm(name string) (Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if algorithm, exists := m.algorithms[name]; exists {
		return algorithm, nil
	}

	return nil, fmt.Errorf("unknown algorithm: %s", name)
}

func (m *Manager) GetParameters(algorithm string) map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]interface{})
	for k, v := range m.parameters[algorithm] {
		result[k] = v
	}
	return result
}

func (m *Manager) SetParameter(algorithm, name string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if params, exists := m.parameters[algorithm]; exists {
		params[name] = value
		return nil
	}

	return fmt.Errorf("unknown algorithm: %s", algorithm)
}

func (m *Manager) GetAvailableAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	algorithms := make([]string, 0, len(m.algorithms))
	for name := range m.algorithms {
		algorithms = append(algorithms, name)
	}
	sort.Strings(algorithms)

	return algorithms
}

// Cleanup drops pooled device storage.
func (m *Manager) Cleanup() int {
	return m.pool.Cleanup()
}
