package main

// Default command-line flag values
const (
	defaultInputRate  = 44100 // CD quality sample rate
	defaultOutputRate = 44099 // Prime-ratio neighbour of CD rate
	defaultFrames     = 44100 // One second at the default input rate
	defaultChannels   = 2     // Stereo
)

// Limits
const (
	maxFrames   = 1 << 26
	maxChannels = 64
)

// Test signal parameters
const (
	testSignalFrequency = 1000.0 // 1 kHz test tone, doubled per channel
	testSignalAmplitude = 0.5
)

// Memory conversion
const (
	bytesPerKilobyte = 1024
)
