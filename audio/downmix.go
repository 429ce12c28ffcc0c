// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Downmix averages every frame of a multichannel Source into one sample.
type Downmix struct {
	src Source
	tmp []int16
}

func NewDownmix(src Source) *Downmix {
	return &Downmix{src: src}
}

func (m *Downmix) SampleRate() int { return m.src.SampleRate() }
func (m *Downmix) Channels() int   { return 1 }

func (m *Downmix) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing downmix source: %w", err)
	}
	return nil
}

// ReadSamples fills dst with mono samples, one per source frame.
func (m *Downmix) ReadSamples(dst []int16) (int, error) {
	ch := m.src.Channels()
	if ch == 1 || len(dst) == 0 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * ch
	if cap(m.tmp) < need {
		m.tmp = make([]int16, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	frames := n / ch

	for f := range frames {
		var sum int32
		for _, v := range m.tmp[f*ch : f*ch+ch] {
			sum += int32(v)
		}
		dst[f] = int16(sum / int32(ch))
	}

	return frames, err
}
