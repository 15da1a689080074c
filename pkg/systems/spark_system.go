package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/decker502/cursorfx/pkg/components"
	"github.com/decker502/cursorfx/pkg/config"
	"github.com/decker502/cursorfx/pkg/utils"
)

// SparkSystem 火花发射层
//
// 指针移动距离超过阈值的帧在指针处追加火花，火花逆着指针运动方向散开，
// 生命归零后移除。数量受 Sparks.Max 限制，超出的火花直接丢弃。
type SparkSystem struct {
	cfg     *config.EffectConfig
	pointer *PointerSystem
	rng     *rand.Rand

	sparks  []components.SparkComponent
	lastSeq uint64
}

// NewSparkSystem 创建火花系统；rng 为 nil 时使用基于时间的随机源
func NewSparkSystem(cfg *config.EffectConfig, pointer *PointerSystem, rng *rand.Rand) *SparkSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SparkSystem{
		cfg:     cfg,
		pointer: pointer,
		rng:     rng,
		sparks:  make([]components.SparkComponent, 0, cfg.Sparks.Max),
	}
}

// Sparks 返回当前存活的火花（仅在当前帧内有效）
func (s *SparkSystem) Sparks() []components.SparkComponent {
	return s.sparks
}

// Count 返回存活火花数量
func (s *SparkSystem) Count() int {
	return len(s.sparks)
}

// Update 推进一帧：先老化并移除过期火花，再按本帧指针移动发射新火花
func (s *SparkSystem) Update() {
	if !s.cfg.Sparks.Enabled {
		s.sparks = s.sparks[:0]
		return
	}

	friction := s.cfg.Sparks.Friction
	alive := 0
	for i := range s.sparks {
		sp := &s.sparks[i]

		sp.Life--
		if sp.Life <= 0 {
			continue
		}

		sp.VX *= friction
		sp.VY *= friction
		sp.X += sp.VX
		sp.Y += sp.VY

		if !utils.IsFinite(sp.X) || !utils.IsFinite(sp.Y) {
			continue
		}

		s.sparks[alive] = s.sparks[i]
		alive++
	}
	s.sparks = s.sparks[:alive]

	ptr := s.pointer.State()
	if ptr.Present && ptr.Seq != s.lastSeq {
		s.emit(ptr)
	}
	s.lastSeq = ptr.Seq
}

func (s *SparkSystem) emit(ptr components.PointerComponent) {
	cfg := s.cfg.Sparks
	moved := math.Hypot(ptr.VX, ptr.VY)
	if moved < cfg.MinMoveDistance || !utils.IsFinite(moved) {
		return
	}

	palette := s.cfg.PaletteColors()
	if len(palette) == 0 {
		return
	}

	// 逆着指针运动方向
	backX, backY := -ptr.VX/moved, -ptr.VY/moved

	for n := 0; n < cfg.PerMove && len(s.sparks) < cfg.Max; n++ {
		jitter := (s.rng.Float64() - 0.5) * math.Pi / 2
		cos, sin := math.Cos(jitter), math.Sin(jitter)
		dirX := backX*cos - backY*sin
		dirY := backX*sin + backY*cos
		speed := cfg.Speed * (0.5 + s.rng.Float64())

		life := cfg.Life/2 + s.rng.Intn(cfg.Life/2+1)
		if life < 1 {
			life = 1
		}
		s.sparks = append(s.sparks, components.SparkComponent{
			X:          ptr.X,
			Y:          ptr.Y,
			VX:         dirX * speed,
			VY:         dirY * speed,
			Life:       life,
			MaxLife:    life,
			Size:       cfg.Size * (0.6 + 0.8*s.rng.Float64()),
			StartColor: palette[s.rng.Intn(len(palette))],
			EndColor:   palette[len(palette)-1],
		})
	}
}
