// Package control turns user input into validated parameter values.
//
// A [Slider] maps an integer position to a value. The mapping is linear,
//
//	value = Offset + position/Divisor
//
// [PercentSlider] is the fixed 0..100 / 50 mapping, which only suits
// parameters living in [0, 2]. [FitSlider] spreads the positions over the
// parameter's range instead.
//
// A [Panel] holds one value per parameter of a field and is read once per
// tick:
//
//	panel := control.NewPanel(field)
//	if err := panel.Set("rho", 14); err != nil {
//	    // out of range
//	}
//	session.SetParams(panel.Values())
package control
