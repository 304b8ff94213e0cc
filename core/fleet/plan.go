package fleet

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/opsdesk/core"
)

// LoadPlan decodes a master plan written in YAML, in table order:
//
//	- component: Engine oil
//	  interval: 10000
func LoadPlan(r io.Reader) (MasterPlan, error) {
	var plan MasterPlan
	if err := yaml.NewDecoder(r).Decode(&plan); err != nil {
		if err == io.EOF {
			return nil, errors.New("empty master plan")
		}
		return nil, errors.Wrap(err, "decoding master plan")
	}
	if len(plan) == 0 {
		return nil, errors.New("empty master plan")
	}
	for i := range plan {
		plan[i].Component = core.CleanString(plan[i].Component)
		if plan[i].Component == "" {
			return nil, errors.Errorf("master plan rule %d: component is required", i+1)
		}
		if plan[i].Interval <= 0 {
			return nil, errors.Errorf("master plan rule %d (%s): interval must be positive", i+1, plan[i].Component)
		}
	}
	return plan, nil
}

// LoadPlanFile reads the master plan stored at path on fsys.
func LoadPlanFile(fsys afero.Fs, path string) (MasterPlan, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening master plan")
	}
	defer func() { _ = f.Close() }()
	return LoadPlan(f)
}
