package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-slew/dsp/core"
)

func ExampleNoteToHz() {
	fmt.Printf("%.2f Hz\n", core.NoteToHz(57))
	fmt.Printf("%.2f\n", core.HzToNote(880))

	// Output:
	// 220.00 Hz
	// 81.00
}

func ExampleDBToLinear() {
	fmt.Printf("%.4f\n", core.DBToLinear(-6))
	fmt.Printf("%.1f\n", core.HardClip(1.7, 1))

	// Output:
	// 0.5012
	// 1.0
}
