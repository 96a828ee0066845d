package ledwire

//fpsWindow is the number of frames FPS is averaged over.
const fpsWindow = 25

//Registry is the chain of every strip the program drives.
/*
Controllers are shown in the order they were added, one after the other. Settings like
brightness, color correction, color temperature and dither mode are applied to all of them.

Controllers are never removed again. A Registry is not safe for concurrent use; a frame is
shown from start to end before Show returns.
*/
type Registry struct {
	controllers []*Controller
	brightness  uint8
	clock       CycleCounter
	refresh     *MinWait
	maxPower    uint32

	frames     uint32
	frameStart uint32
	fps        uint16
}

//NewRegistry returns an empty Registry at full brightness. clock is used for the refresh rate
//limit and FPS and may be nil.
func NewRegistry(clock CycleCounter) *Registry {
	return &Registry{
		brightness: 255,
		clock:      clock,
		refresh:    NewMinWait(clock, 0),
	}
}

//AddLeds binds leds to c, initializes it and appends it to the chain.
//Adding the same controller twice only rebinds its buffer.
func (r *Registry) AddLeds(c *Controller, leds []RGB) *Controller {
	c.SetLeds(leds)
	if c.registered {
		logger.Debug().Int("leds", len(leds)).Msg("controller already registered")
		return c
	}
	c.Init()
	c.registered = true
	r.controllers = append(r.controllers, c)
	logger.Debug().Int("index", len(r.controllers)-1).Int("leds", len(leds)).Msg("controller registered")
	return c
}

//Count is the number of controllers.
func (r *Registry) Count() int {
	return len(r.controllers)
}

//At returns controller i, or nil if i is out of range.
func (r *Registry) At(i int) *Controller {
	if i < 0 || i >= len(r.controllers) {
		return nil
	}
	return r.controllers[i]
}

//SetBrightness sets the global brightness used by Show.
func (r *Registry) SetBrightness(scale uint8) {
	r.brightness = scale
}

//Brightness returns the global brightness.
func (r *Registry) Brightness() uint8 {
	return r.brightness
}

//Show sends every bound buffer at the global brightness.
func (r *Registry) Show() {
	r.ShowScale(r.brightness)
}

//ShowScale sends every bound buffer at brightness scale, limited by the power budget if one is set.
func (r *Registry) ShowScale(scale uint8) {
	r.refresh.Wait()
	if r.maxPower > 0 {
		scale = r.limit(scale)
	}
	for _, c := range r.controllers {
		c.ShowLeds(scale)
	}
	r.refresh.Mark()
	r.countFPS()
}

//ShowColor sends color on every bound pixel at brightness scale.
func (r *Registry) ShowColor(color RGB, scale uint8) {
	r.refresh.Wait()
	for _, c := range r.controllers {
		c.ShowLedsColor(color, scale)
	}
	r.refresh.Mark()
	r.countFPS()
}

//Clear zeroes all bound buffers. With write set the strips are switched off as well.
func (r *Registry) Clear(write bool) {
	if write {
		r.ShowColor(Black, 0)
	}
	r.ClearData()
}

//ClearData zeroes all bound buffers without sending anything.
func (r *Registry) ClearData() {
	for _, c := range r.controllers {
		leds := c.Leds()
		for i := range leds {
			leds[i] = Black
		}
	}
}

//Delay keeps showing the buffers for at least ms milliseconds so dithering keeps working while
//the caller waits. It shows at least once.
func (r *Registry) Delay(ms uint32) {
	if r.clock == nil {
		r.Show()
		return
	}
	//elapsed is summed from short deltas, so delays beyond a counter period work too
	total := uint64(ms) * 1000 * uint64(r.clock.CyclesPerMicrosecond())
	var elapsed uint64
	last := r.clock.Now()
	for {
		r.Show()
		now := r.clock.Now()
		elapsed += uint64(now - last)
		last = now
		if elapsed >= total {
			return
		}
	}
}

//SetCorrection sets the color correction of every controller.
func (r *Registry) SetCorrection(correction RGB) {
	for _, c := range r.controllers {
		c.SetCorrection(correction)
	}
}

//SetTemperature sets the color temperature of every controller.
func (r *Registry) SetTemperature(temperature RGB) {
	for _, c := range r.controllers {
		c.SetTemperature(temperature)
	}
}

//SetDither sets the dither mode of every controller.
func (r *Registry) SetDither(mode DitherMode) {
	for _, c := range r.controllers {
		c.SetDither(mode)
	}
}

//SetMaxRefreshRate limits Show to fps frames per second. 0 removes the limit.
func (r *Registry) SetMaxRefreshRate(fps uint16) {
	if fps == 0 {
		r.refresh.SetWait(0)
		return
	}
	r.refresh.SetWait(1000000 / uint32(fps))
}

//SetMaxPower sets the power budget of all strips together. 0 for either value removes it.
func (r *Registry) SetMaxPower(volts uint8, milliamps uint32) {
	r.maxPower = uint32(volts) * milliamps
}

//MaxPower returns the power budget in milliwatts, 0 if there is none.
func (r *Registry) MaxPower() uint32 {
	return r.maxPower
}

func (r *Registry) limit(scale uint8) uint8 {
	var unscaled uint32
	for _, c := range r.controllers {
		unscaled += UnscaledPower(c.Leds())
	}
	limited := CalculateMaxBrightness(unscaled, scale, r.maxPower)
	if limited < scale {
		logger.Debug().Uint8("requested", scale).Uint8("limited", limited).Uint32("mW", unscaled).Msg("brightness limited by power budget")
	}
	return limited
}

//FPS returns the frame rate averaged over the last completed window of frames.
func (r *Registry) FPS() uint16 {
	return r.fps
}

func (r *Registry) countFPS() {
	if r.clock == nil {
		return
	}
	now := r.clock.Now()
	if r.frames == 0 {
		r.frameStart = now
	}
	r.frames++
	if r.frames <= fpsWindow {
		return
	}
	elapsed := uint64(now - r.frameStart)
	if elapsed > 0 {
		r.fps = uint16(uint64(fpsWindow) * 1000000 * uint64(r.clock.CyclesPerMicrosecond()) / elapsed)
	}
	r.frames = 1
	r.frameStart = now
}
