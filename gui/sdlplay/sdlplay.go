// This file is part of Apple2Go.
//
// Apple2Go is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Apple2Go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Apple2Go.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlplay is the SDL2 play mode front end: a window showing the
// framebuffer, key events fed to the keyboard register, speaker events
// resampled into an SDL audio queue, and wall clock pacing of the
// emulation.
package sdlplay

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/iflan/apple2go/curated"
	"github.com/iflan/apple2go/hardware"
	"github.com/iflan/apple2go/hardware/video"
	"github.com/iflan/apple2go/logger"
)

// window scale over the native 560x384 framebuffer.
const pixelScale = 2

// audio output rate.
const sampleRate = 22050

// tick interval the budget clamp is calibrated against.
const tickInterval = 17 * time.Millisecond

// SdlPlay runs a machine in an SDL window.
type SdlPlay struct {
	machine *hardware.Apple2

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	audioDev sdl.AudioDeviceID

	// speaker resampling state
	audioLevel  bool
	audioCycles uint64

	lastTick time.Time
}

// New is the preferred method of initialisation for the SdlPlay type.
func New(machine *hardware.Apple2) (*SdlPlay, error) {
	scr := &SdlPlay{
		machine: machine,
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	var err error
	scr.window, err = sdl.CreateWindow("apple2go",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		video.Width*pixelScale, video.Height*pixelScale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.texture, err = scr.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING, video.Width, video.Height)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  1024,
	}
	scr.audioDev, err = sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		// no audio is not fatal
		logger.Logf("sdlplay", "no audio: %v", err)
	} else {
		sdl.PauseAudioDevice(scr.audioDev, false)
	}

	return scr, nil
}

// Destroy tears down the SDL resources.
func (scr *SdlPlay) Destroy() {
	if scr.audioDev != 0 {
		sdl.CloseAudioDevice(scr.audioDev)
	}
	scr.texture.Destroy()
	scr.renderer.Destroy()
	scr.window.Destroy()
	sdl.Quit()
}

// Run paces the machine against the wall clock until the window closes.
func (scr *SdlPlay) Run() error {
	scr.machine.Reset()
	scr.lastTick = time.Now()
	scr.audioCycles = scr.machine.CPU.Cycles

	for {
		if quit := scr.service(); quit {
			return nil
		}

		khz := scr.machine.IO.KHz()

		// the cycle budget for this tick: elapsed wall clock time at the
		// current clock rate, capped to one interval's worth so a stalled
		// host does not cause a catch up storm
		now := time.Now()
		elapsed := now.Sub(scr.lastTick)
		scr.lastTick = now

		budget := int(elapsed.Milliseconds()) * khz
		if limit := int(tickInterval.Milliseconds()) * khz; budget > limit {
			budget = limit
		}

		if rendered := scr.machine.AdvanceFrame(budget); rendered {
			scr.present()
		}

		scr.queueAudio()
	}
}

// present pushes the framebuffer to the window.
func (scr *SdlPlay) present() {
	fb := scr.machine.Screen.Framebuffer()

	scr.texture.Update(nil, fb.Pixels, video.Width*4)
	scr.renderer.Copy(scr.texture, nil, nil)
	scr.renderer.Present()
}

// queueAudio converts this frame's speaker events into samples.
func (scr *SdlPlay) queueAudio() {
	if scr.audioDev == 0 {
		scr.machine.IO.Speaker.ReadEvents()
		return
	}

	khz := scr.machine.IO.KHz()
	cyclesPerSample := float64(khz) * 1000 / sampleRate

	events := scr.machine.IO.Speaker.ReadEvents()
	end := scr.machine.CPU.Cycles

	n := int(float64(end-scr.audioCycles) / cyclesPerSample)
	if n <= 0 {
		return
	}

	buf := make([]byte, n*2)
	e := 0
	for i := 0; i < n; i++ {
		cycle := scr.audioCycles + uint64(float64(i)*cyclesPerSample)
		for e < len(events) && events[e].Cycle <= cycle {
			scr.audioLevel = events[e].Level
			e++
		}

		var s int16
		if scr.audioLevel {
			s = 12000
		} else {
			s = -12000
		}
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	scr.audioCycles = end

	sdl.QueueAudio(scr.audioDev, buf)
}

// service drains the SDL event queue. Returns true on quit.
func (scr *SdlPlay) service() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN {
				if code, ok := appleKey(ev.Keysym); ok {
					scr.machine.IO.Keyboard.KeyDown(code)
				}
			} else {
				scr.machine.IO.Keyboard.KeyUp()
			}

		case *sdl.MouseMotionEvent:
			// the mouse stands in for the paddles
			w, h := scr.window.GetSize()
			scr.machine.IO.Paddles.SetPosition(0, float64(ev.X)/float64(w))
			scr.machine.IO.Paddles.SetPosition(1, float64(ev.Y)/float64(h))

		case *sdl.MouseButtonEvent:
			n := 0
			if ev.Button != sdl.BUTTON_LEFT {
				n = 1
			}
			if ev.Type == sdl.MOUSEBUTTONDOWN {
				scr.machine.IO.Paddles.ButtonDown(n)
			} else {
				scr.machine.IO.Paddles.ButtonUp(n)
			}
		}
	}

	return false
}

// appleKey translates an SDL key to the 7 bit Apple key code.
func appleKey(sym sdl.Keysym) (uint8, bool) {
	k := sym.Sym

	switch k {
	case sdl.K_RETURN:
		return 0x0d, true
	case sdl.K_ESCAPE:
		return 0x1b, true
	case sdl.K_BACKSPACE, sdl.K_LEFT:
		return 0x08, true
	case sdl.K_RIGHT:
		return 0x15, true
	case sdl.K_UP:
		return 0x0b, true
	case sdl.K_DOWN:
		return 0x0a, true
	case sdl.K_TAB:
		return 0x09, true
	}

	if k < 0x20 || k > 0x7e {
		return 0, false
	}

	c := uint8(k)

	shift := sym.Mod&sdl.KMOD_SHIFT != 0
	ctrl := sym.Mod&sdl.KMOD_CTRL != 0

	// the Apple II keyboard is uppercase
	if c >= 'a' && c <= 'z' {
		c -= 0x20
		if ctrl {
			c &= 0x1f
		}
	} else if shift {
		c = shifted(c)
	}

	return c, true
}

// shifted maps the US layout shifted punctuation and digits.
func shifted(c uint8) uint8 {
	m := map[uint8]uint8{
		'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
		'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
		'-': '_', '=': '+', ';': ':', '\'': '"', ',': '<',
		'.': '>', '/': '?', '[': '{', ']': '}', '\\': '|',
		'`': '~',
	}
	if s, ok := m[c]; ok {
		return s
	}
	return c
}
