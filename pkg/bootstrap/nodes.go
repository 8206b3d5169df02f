package bootstrap

import (
	"github.com/azlift/azlift/pkg/config"
)

// ConfigureNodes fills missing head and worker template sections with the
// role defaults, caller supplied sections win.
func (spec *Spec) ConfigureNodes() {
	configureNodes(spec.Config)
}

func configureNodes(cfg *config.Config) {
	cfg.HeadNode = config.ApplyNodeDefaults(cfg.HeadNode, config.DefaultHeadNodeConfig())
	cfg.WorkerNodes = config.ApplyNodeDefaults(cfg.WorkerNodes, config.DefaultWorkerNodeConfig())
}
