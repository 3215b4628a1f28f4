package ncurve

import (
	"strconv"

	"github.com/npillmayer/schuko"
)

// Options collects default tolerances an application passes to the
// tolerance-bounded operations. The kernel never reads them implicitly.
type Options struct {
	KnotRemovalTolerance     float64 // RemoveKnot
	DegreeReductionTolerance float64 // ReduceDegree
	FairingTolerance         float64 // Fair, maximum move per call
	FilletTangentScale       float64 // FillGap; 0 selects C1 Hermite fillets
	ConcatKnotType           KnotType
	SampleCount              int // sampling density for shape comparisons
}

// DefaultOptions returns the options used when no configuration is present.
func DefaultOptions() Options {
	return Options{
		KnotRemovalTolerance:     1e-4,
		DegreeReductionTolerance: 1e-3,
		FairingTolerance:         0.1,
		FilletTangentScale:       1.0 / 3.0,
		ConcatKnotType:           Custom,
		SampleCount:              100,
	}
}

// Configuration keys read by OptionsFromConfig.
const (
	ConfKnotRemovalTolerance     = "ncurve.knotremoval.tolerance"
	ConfDegreeReductionTolerance = "ncurve.degreereduction.tolerance"
	ConfFairingTolerance         = "ncurve.fairing.tolerance"
	ConfFilletTangentScale       = "ncurve.fillet.tangentscale"
	ConfConcatKnotType           = "ncurve.concat.knottype"
	ConfSampleCount              = "ncurve.samples"
)

// OptionsFromConfig overlays the values set in conf onto DefaultOptions.
func OptionsFromConfig(conf schuko.Configuration) (Options, error) {
	opts := DefaultOptions()
	if conf == nil {
		return opts, nil
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{ConfKnotRemovalTolerance, &opts.KnotRemovalTolerance},
		{ConfDegreeReductionTolerance, &opts.DegreeReductionTolerance},
		{ConfFairingTolerance, &opts.FairingTolerance},
		{ConfFilletTangentScale, &opts.FilletTangentScale},
	}
	for _, f := range floats {
		if !conf.IsSet(f.key) {
			continue
		}
		v, err := strconv.ParseFloat(conf.GetString(f.key), 64)
		if err != nil || v < 0 {
			return opts, newError("OptionsFromConfig", InvalidArgument, "%s: %q", f.key, conf.GetString(f.key))
		}
		*f.dst = v
	}
	if conf.IsSet(ConfConcatKnotType) {
		kt, err := ParseKnotType(conf.GetString(ConfConcatKnotType))
		if err != nil {
			return opts, err
		}
		opts.ConcatKnotType = kt
	}
	if conf.IsSet(ConfSampleCount) {
		if n := conf.GetInt(ConfSampleCount); n >= 2 {
			opts.SampleCount = n
		} else {
			return opts, newError("OptionsFromConfig", InvalidArgument, "%s must be at least 2", ConfSampleCount)
		}
	}
	tracer().Debugf("options: %+v", opts)
	return opts, nil
}
