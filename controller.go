package ledwire

//Driver puts one frame on the wire for one chipset family. It never fails: anything it cannot
//do is skipped.
type Driver interface {
	Init()
	ShowPixels(pc *PixelController)
}

//Controller holds what every strip has in common: the bound pixel buffer, the byte order,
//color correction, color temperature and dither mode. The chipset specific part is the Driver.
type Controller struct {
	drv         Driver
	order       Order
	leds        []RGB
	correction  RGB
	temperature RGB
	dither      DitherMode
	initialized bool
	registered  bool
}

//NewController returns a Controller sending through drv in byte order order.
//A nil drv gives a controller which silently shows nothing.
func NewController(drv Driver, order Order) *Controller {
	if drv == nil {
		drv = Null{}
	}
	return &Controller{
		drv:         drv,
		order:       order,
		correction:  UncorrectedColor,
		temperature: UncorrectedTemperature,
		dither:      BinaryDither,
	}
}

//Init initializes the driver once.
func (c *Controller) Init() {
	if c.initialized {
		return
	}
	c.drv.Init()
	c.initialized = true
}

//Driver returns the chipset driver.
func (c *Controller) Driver() Driver {
	return c.drv
}

//Order returns the byte order.
func (c *Controller) Order() Order {
	return c.order
}

//SetLeds binds the pixel buffer shown by ShowLeds.
func (c *Controller) SetLeds(leds []RGB) *Controller {
	c.leds = leds
	return c
}

//Leds returns the bound pixel buffer.
func (c *Controller) Leds() []RGB {
	return c.leds
}

//Size is the number of bound pixels.
func (c *Controller) Size() int {
	return len(c.leds)
}

//SetCorrection sets the color correction.
func (c *Controller) SetCorrection(correction RGB) *Controller {
	c.correction = correction
	return c
}

//Correction returns the color correction.
func (c *Controller) Correction() RGB {
	return c.correction
}

//SetTemperature sets the color temperature.
func (c *Controller) SetTemperature(temperature RGB) *Controller {
	c.temperature = temperature
	return c
}

//Temperature returns the color temperature.
func (c *Controller) Temperature() RGB {
	return c.temperature
}

//SetDither sets the dither mode.
func (c *Controller) SetDither(mode DitherMode) *Controller {
	c.dither = mode
	return c
}

//Dither returns the dither mode.
func (c *Controller) Dither() DitherMode {
	return c.dither
}

//Adjustment is the per channel scale for brightness scale combined with correction and temperature.
func (c *Controller) Adjustment(scale uint8) [3]uint8 {
	return adjustment(scale, c.correction, c.temperature)
}

//Show transmits the first n pixels of leds with brightness scale.
func (c *Controller) Show(leds []RGB, n int, scale uint8) {
	c.Init()
	pc := NewPixelController(leds, n, c.Adjustment(scale), c.dither, c.order)
	c.drv.ShowPixels(&pc)
}

//ShowColor transmits n pixels of color with brightness scale.
func (c *Controller) ShowColor(color RGB, n int, scale uint8) {
	c.Init()
	pc := NewColorController(color, n, c.Adjustment(scale), c.dither, c.order)
	c.drv.ShowPixels(&pc)
}

//ShowLeds transmits the bound buffer.
func (c *Controller) ShowLeds(scale uint8) {
	c.Show(c.leds, len(c.leds), scale)
}

//ShowLedsColor transmits color on every bound pixel.
func (c *Controller) ShowLedsColor(color RGB, scale uint8) {
	c.ShowColor(color, len(c.leds), scale)
}

//ClearLeds transmits n dark pixels. The bound buffer is left alone.
func (c *Controller) ClearLeds(n int) {
	c.ShowColor(Black, n, 0)
}

//Null is the Driver used when nothing could be resolved. It shows nothing.
type Null struct{}

//Init does nothing.
func (Null) Init() {}

//ShowPixels does nothing.
func (Null) ShowPixels(*PixelController) {}
