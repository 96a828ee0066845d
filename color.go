package ledwire

import (
	"image/color"
	"strconv"
	"strings"
)

//RGB is one pixel as stored by the caller. It is only ever read by the drivers.
type RGB struct {
	R, G, B uint8
}

//Black is all channels off.
var Black = RGB{}

//Hex returns the RGB with the value 0xRRGGBB.
func Hex(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

//ColorToRGB turns a color.Color into an RGB. Alpha is ignored.
func ColorToRGB(c color.Color) RGB {
	// A color's RGBA method returns values in the range [0, 65535]
	red, green, blue, _ := c.RGBA()
	return RGB{R: uint8(red >> 8), G: uint8(green >> 8), B: uint8(blue >> 8)}
}

//RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

//UInt32 returns the color as 0xRRGGBB.
func (c RGB) UInt32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

//Channel returns logical channel i (0 red, 1 green, 2 blue).
func (c RGB) Channel(i int) uint8 {
	switch i {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// Color corrections for common strip types.
var (
	TypicalSMD5050     = Hex(0xFFB0F0)
	TypicalLEDStrip    = Hex(0xFFB0F0)
	Typical8mmPixel    = Hex(0xFFE08C)
	TypicalPixelString = Typical8mmPixel
	UncorrectedColor   = Hex(0xFFFFFF)
)

// Color temperatures of common light sources.
var (
	Candle                  = Hex(0xFF9329)
	Tungsten40W             = Hex(0xFFC58F)
	Tungsten100W            = Hex(0xFFD6AA)
	Halogen                 = Hex(0xFFF1E0)
	CarbonArc               = Hex(0xFFFAF4)
	HighNoonSun             = Hex(0xFFFFFB)
	DirectSunlight          = Hex(0xFFFFFF)
	OvercastSky             = Hex(0xC9E2FF)
	ClearBlueSky            = Hex(0x409CFF)
	WarmFluorescent         = Hex(0xFFF4E5)
	StandardFluorescent     = Hex(0xF4FFFA)
	CoolWhiteFluorescent    = Hex(0xD4EBFF)
	FullSpectrumFluorescent = Hex(0xFFF4F2)
	GrowLightFluorescent    = Hex(0xFFEFF7)
	BlackLightFluorescent   = Hex(0xA700FF)
	MercuryVapor            = Hex(0xD8F7FF)
	SodiumVapor             = Hex(0xFFD1B2)
	MetalHalide             = Hex(0xF2FCFF)
	HighPressureSodium      = Hex(0xFFB74C)
	UncorrectedTemperature  = Hex(0xFFFFFF)
)

//adjustment combines brightness, correction and temperature into one scale per logical channel.
//A channel whose correction or temperature is zero is forced off.
func adjustment(scale uint8, correction, temperature RGB) [3]uint8 {
	var adj [3]uint8
	if scale == 0 {
		return adj
	}
	for i := 0; i < 3; i++ {
		cc := uint32(correction.Channel(i))
		ct := uint32(temperature.Channel(i))
		if cc == 0 || ct == 0 {
			continue
		}
		work := (cc + 1) * (ct + 1) * uint32(scale)
		adj[i] = uint8(work >> 16)
	}
	return adj
}

var namedColors = map[string]RGB{
	"typicalsmd5050":          TypicalSMD5050,
	"typicalledstrip":         TypicalLEDStrip,
	"typical8mmpixel":         Typical8mmPixel,
	"typicalpixelstring":      TypicalPixelString,
	"uncorrectedcolor":        UncorrectedColor,
	"candle":                  Candle,
	"tungsten40w":             Tungsten40W,
	"tungsten100w":            Tungsten100W,
	"halogen":                 Halogen,
	"carbonarc":               CarbonArc,
	"highnoonsun":             HighNoonSun,
	"directsunlight":          DirectSunlight,
	"overcastsky":             OvercastSky,
	"clearbluesky":            ClearBlueSky,
	"warmfluorescent":         WarmFluorescent,
	"standardfluorescent":     StandardFluorescent,
	"coolwhitefluorescent":    CoolWhiteFluorescent,
	"fullspectrumfluorescent": FullSpectrumFluorescent,
	"growlightfluorescent":    GrowLightFluorescent,
	"blacklightfluorescent":   BlackLightFluorescent,
	"mercuryvapor":            MercuryVapor,
	"sodiumvapor":             SodiumVapor,
	"metalhalide":             MetalHalide,
	"highpressuresodium":      HighPressureSodium,
	"uncorrectedtemperature":  UncorrectedTemperature,
}

//ParseColor accepts 0xRRGGBB, #RRGGBB or the name of one of the corrections and temperatures
//above, case insensitive.
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "0x"), "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return Black, ErrWrongColor
	}
	return Hex(uint32(v)), nil
}
