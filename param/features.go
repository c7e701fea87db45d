package param

// Features lists the optional parts compiled into the effect. Disabled
// features omit their parameters and text conversions.
type Features struct {
	HQ           bool
	StereoConfig bool
	Tuning       bool
	Sidechain    bool
}

// DefaultFeatures returns the features selected by build tags: nohq,
// nostereoconfig, notuning and nosidechain each switch one off.
func DefaultFeatures() Features {
	return Features{
		HQ:           hasHQ,
		StereoConfig: hasStereoConfig,
		Tuning:       hasTuning,
		Sidechain:    hasSidechain,
	}
}

// AllFeatures returns every feature enabled regardless of build tags.
func AllFeatures() Features {
	return Features{HQ: true, StereoConfig: true, Tuning: true, Sidechain: true}
}
