package systems

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/cursorfx/pkg/components"
	"github.com/decker502/cursorfx/pkg/config"
	"github.com/decker502/cursorfx/pkg/render"
	"github.com/decker502/cursorfx/pkg/utils"
)

const (
	// 环绕区内相对区外的尺寸放大系数（线宽 1.8/1.5，长度 7.2/6.4）
	orbitThicknessBoost = 1.2
	orbitLengthBoost    = 1.125

	minLineWidth  = 0.18
	minHalfLength = 0.2
)

// ParticleRenderSystem 渲染步骤
//
// 每帧先清空表面并重新设置合成模式（表面重建后会恢复默认值），
// 再按池顺序绘制透明度高于阈值的粒子，最后绘制火花层。
type ParticleRenderSystem struct {
	cfg       *config.EffectConfig
	pool      *ParticlePool
	particles *ParticleSystem
	sparks    *SparkSystem // 可为 nil

	composite render.CompositeMode

	// drawn 上一帧实际绘制的粒子数
	drawn int
}

// NewParticleRenderSystem 创建渲染系统
func NewParticleRenderSystem(cfg *config.EffectConfig, pool *ParticlePool, particles *ParticleSystem, sparks *SparkSystem) *ParticleRenderSystem {
	return &ParticleRenderSystem{
		cfg:       cfg,
		pool:      pool,
		particles: particles,
		sparks:    sparks,
		composite: render.ParseCompositeMode(cfg.Render.Composite),
	}
}

// Drawn 返回上一帧绘制的粒子数
func (s *ParticleRenderSystem) Drawn() int {
	return s.drawn
}

// Draw 绘制一帧；nowMs 为帧时间戳（毫秒），驱动呼吸动画
func (s *ParticleRenderSystem) Draw(surface render.Surface, nowMs float64) {
	surface.SetCompositeMode(s.composite)
	surface.Clear()

	ax, ay, anchored := s.particles.Anchor()

	s.drawn = 0
	particles := s.pool.Particles()
	for i := range particles {
		if s.drawParticle(surface, &particles[i], ax, ay, anchored, nowMs) {
			s.drawn++
		}
	}

	if s.sparks != nil {
		s.drawSparks(surface)
	}
}

func (s *ParticleRenderSystem) drawParticle(surface render.Surface, p *components.ParticleComponent, ax, ay float64, anchored bool, nowMs float64) bool {
	rc := s.cfg.Render
	zone := s.cfg.Zones.OrbitZone

	thickness := p.BaseSize * rc.LineThickness
	length := p.BaseSize * rc.LineLength
	alphaScale := 1.0

	var angle float64
	if anchored {
		dx, dy := ax-p.X, ay-p.Y
		dist := math.Hypot(dx, dy)
		angle = math.Atan2(dy, dx)

		if dist < zone {
			ratio := utils.Clamp01(dist / zone)
			breathe := 1 + math.Sin(nowMs/rc.BreathePeriod+p.BreathePhase)*rc.BreatheAmount
			sizeScale := 0.08 + ratio*0.92
			thickness = p.BaseSize * rc.LineThickness * orbitThicknessBoost * sizeScale * breathe
			length = p.BaseSize * rc.LineLength * orbitLengthBoost * sizeScale * breathe
			alphaScale = 0.2 + ratio*0.8
		}
	} else if p.VX != 0 || p.VY != 0 {
		angle = math.Atan2(p.VY, p.VX)
	} else {
		angle = p.OrbitAngle
	}

	drawAlpha := p.Alpha * alphaScale
	if !(drawAlpha > s.cfg.Opacity.DrawThreshold) {
		return false
	}

	clr := withAlpha(p.Color, drawAlpha)
	width := math.Max(minLineWidth, thickness)

	if rc.Shape == config.ShapeCircle {
		surface.FillCircle(p.X, p.Y, width, clr)
		return true
	}

	half := math.Max(minHalfLength, length*0.5)
	cos, sin := math.Cos(angle), math.Sin(angle)
	surface.StrokeLine(p.X-cos*half, p.Y-sin*half, p.X+cos*half, p.Y+sin*half, width, clr)
	return true
}

func (s *ParticleRenderSystem) drawSparks(surface render.Surface) {
	threshold := s.cfg.Opacity.DrawThreshold
	for i := range s.sparks.Sparks() {
		sp := &s.sparks.Sparks()[i]
		t := sp.Progress()
		// 前半程保持明亮，临近结束时快速淡出
		alpha := 1 - utils.EaseInQuad(t)
		if alpha <= threshold {
			continue
		}

		start := toColorful(sp.StartColor)
		end := toColorful(sp.EndColor)
		r, g, b := start.BlendLab(end, t).Clamped().RGB255()

		radius := sp.Size * (1 - 0.6*t)
		surface.FillCircle(sp.X, sp.Y, radius, withAlpha(color.NRGBA{R: r, G: g, B: b, A: 255}, alpha))
	}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(utils.Clamp01(alpha)*255 + 0.5)
	return c
}
