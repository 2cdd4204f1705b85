package arm

import (
	// for embedding model file.
	_ "embed"
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

//go:embed so101.json
var so101JSON []byte

// Dimensions holds the link lengths and fixed offsets of one arm geometry, all
// in meters. The values are immutable once loaded.
type Dimensions struct {
	BaseHeight     float64 `json:"baseHeight"`
	BaseRadius     float64 `json:"baseRadius"`
	Link1Height    float64 `json:"link1Height"`
	Link2Length    float64 `json:"link2Length"`
	UpperArmLength float64 `json:"upperArmLength"`
	ForearmLength  float64 `json:"forearmLength"`
	WristLength    float64 `json:"wristLength"`
	GripperLength  float64 `json:"gripperLength"`
	// ShoulderOffset is the fixed forward displacement of the arm plane from
	// the base rotation axis. ElbowOffset is a small lateral offset in the
	// shoulder region; only the workspace heuristic consumes it.
	ShoulderOffset float64 `json:"shoulderOffset"`
	ElbowOffset    float64 `json:"elbowOffset"`
}

// ShoulderPivotHeight returns the height of the shoulder rotation axis above
// the ground plane.
func (d Dimensions) ShoulderPivotHeight() float64 {
	return d.BaseHeight + d.Link1Height + d.Link2Length
}

// WristSegmentLength returns the combined length of the wrist and gripper,
// which move as a single segment once the wrist angle is set.
func (d Dimensions) WristSegmentLength() float64 {
	return d.WristLength + d.GripperLength
}

// TotalReach returns the vector-sum length of all arm segments, the radius of
// the sphere the tip could sweep with unconstrained joints.
func (d Dimensions) TotalReach() float64 {
	return d.UpperArmLength + d.ForearmLength + d.WristLength + d.GripperLength
}

// Validate checks that every link length is positive and offsets are not negative.
func (d Dimensions) Validate() error {
	var err error
	for _, dim := range []struct {
		name  string
		value float64
	}{
		{"baseHeight", d.BaseHeight},
		{"baseRadius", d.BaseRadius},
		{"link1Height", d.Link1Height},
		{"link2Length", d.Link2Length},
		{"upperArmLength", d.UpperArmLength},
		{"forearmLength", d.ForearmLength},
		{"wristLength", d.WristLength},
		{"gripperLength", d.GripperLength},
	} {
		if dim.value <= 0 {
			err = multierr.Append(err, errors.Errorf("dimension %s: must be positive, got %f", dim.name, dim.value))
		}
	}
	if d.ShoulderOffset < 0 || d.ElbowOffset < 0 {
		err = multierr.Append(err, errors.New("shoulder offsets must not be negative"))
	}
	return err
}

// modelConfig represents all supported fields in an arm model JSON file.
type modelConfig struct {
	Name       string     `json:"name"`
	Dimensions Dimensions `json:"dimensions"`
	Limits     Limits     `json:"limits"`
}

// Model bundles the dimensions and joint limits of one arm geometry. It is
// immutable after loading, so a single Model may back any number of solvers
// concurrently.
type Model struct {
	name   string
	dims   Dimensions
	limits Limits
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// Dimensions returns the link dimensions of the model.
func (m *Model) Dimensions() Dimensions {
	return m.dims
}

// Limits returns the published joint limit table of the model.
func (m *Model) Limits() Limits {
	return m.limits
}

// UnmarshalModelJSON will parse the given JSON data into an arm model.
// modelName sets the name of the model, and will use the name from the JSON if
// the string is empty.
func UnmarshalModelJSON(jsonData []byte, modelName string) (*Model, error) {
	// empty data probably means the caller loaded a missing or blank model file
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}

	cfg := &modelConfig{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	if modelName == "" {
		modelName = cfg.Name
	}

	if err := cfg.Dimensions.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid dimensions for model %s", modelName)
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid joint limits for model %s", modelName)
	}

	return &Model{name: modelName, dims: cfg.Dimensions, limits: cfg.Limits}, nil
}

// SO101 returns the built-in model of the SO-101 arm.
func SO101() (*Model, error) {
	return UnmarshalModelJSON(so101JSON, "so101")
}
