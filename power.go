package ledwire

// Power model of a typical 5V strip in milliwatts per channel at full output.
const (
	RedMilliwatts   = 16 * 5
	GreenMilliwatts = 11 * 5
	BlueMilliwatts  = 15 * 5
	DarkMilliwatts  = 1 * 5
)

//UnscaledPower estimates the draw in milliwatts of leds shown at full brightness.
func UnscaledPower(leds []RGB) uint32 {
	var r, g, b uint32
	for _, l := range leds {
		r += uint32(l.R)
		g += uint32(l.G)
		b += uint32(l.B)
	}
	return (r*RedMilliwatts+g*GreenMilliwatts+b*BlueMilliwatts)>>8 + uint32(len(leds))*DarkMilliwatts
}

//CalculateMaxBrightness returns the highest brightness not above target that keeps pixels
//drawing unscaled milliwatts at full brightness within maxMilliwatts.
func CalculateMaxBrightness(unscaled uint32, target uint8, maxMilliwatts uint32) uint8 {
	requested := uint64(unscaled) * uint64(target) / 256
	if requested <= uint64(maxMilliwatts) {
		return target
	}
	return uint8(uint64(target) * uint64(maxMilliwatts) / requested)
}
