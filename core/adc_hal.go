package core

// ADCValue is the raw sense reading as seen by the regulator.
// One count corresponds to roughly 1 mV across the LED sense resistor.
type ADCValue uint16

// ADCDriver is the abstract ADC interface that core code uses.
// Conversions are started explicitly and polled; no interrupts.
type ADCDriver interface {
	// Enable powers up the converter
	Enable()

	// Disable powers down the converter
	Disable()

	// StartConversion begins one conversion of the sense channel
	StartConversion()

	// CancelConversion aborts an in-flight conversion
	CancelConversion()

	// ConversionDone reports whether the last started conversion has completed
	ConversionDone() bool

	// Result returns the value of the last completed conversion
	Result() ADCValue
}

// VrefDriver controls the voltage reference the sense channel is measured against.
type VrefDriver interface {
	Enable()
	Disable()
}
