package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// DefaultEffectConfigPath 内嵌的默认光标特效配置路径
const DefaultEffectConfigPath = "data/effect.yaml"

// 粒子形状
const (
	ShapeLine   = "line"
	ShapeCircle = "circle"
)

// 合成模式（与 Canvas globalCompositeOperation 对应）
const (
	CompositeSourceOver = "source-over"
	CompositeLighter    = "lighter"
)

// EffectConfig 光标粒子特效配置
//
// 构造后视为只读：粒子池、模拟系统和渲染系统只持有指针，从不修改。
//
// 配置文件位置: data/effect.yaml
type EffectConfig struct {
	// Particles 粒子池参数
	Particles ParticleConfig `yaml:"particles"`

	// Zones 距离分区阈值（核心区 / 环绕区）
	Zones ZoneConfig `yaml:"zones"`

	// Forces 力学系数
	Forces ForceConfig `yaml:"forces"`

	// Opacity 透明度缓动参数
	Opacity OpacityConfig `yaml:"opacity"`

	// Anchor 锚点弹簧（锚点平滑跟随指针）
	Anchor AnchorConfig `yaml:"anchor"`

	// Render 渲染参数
	Render RenderConfig `yaml:"render"`

	// Palette 调色板（十六进制颜色字符串，如 "#22d3ee"）
	Palette []string `yaml:"palette"`

	// Sparks 指针移动时发射的火花层
	Sparks SparkConfig `yaml:"sparks"`

	// Window 桌面窗口参数
	Window WindowConfig `yaml:"window"`

	// palette 解析后的颜色，由 Validate 填充
	palette []color.NRGBA
}

// ParticleConfig 粒子池参数
type ParticleConfig struct {
	Count        int     `yaml:"count"`        // 粒子数量 N
	MinSize      float64 `yaml:"minSize"`      // 基础尺寸下限
	MaxSize      float64 `yaml:"maxSize"`      // 基础尺寸上限
	DriftSpeed   float64 `yaml:"driftSpeed"`   // 初始速度范围 ±driftSpeed/2
	UniformSpawn float64 `yaml:"uniformSpawn"` // 均匀分布生成的概率，其余从边缘流入
	EdgeOffset   float64 `yaml:"edgeOffset"`   // 边缘生成时距边缘的距离
	WrapMargin   float64 `yaml:"wrapMargin"`   // 环绕边界余量
}

// ZoneConfig 距离分区
type ZoneConfig struct {
	CoreRadius        float64 `yaml:"coreRadius"`        // 核心区半径（排斥）
	OrbitZone         float64 `yaml:"orbitZone"`         // 影响半径（环绕区外沿）
	MinSlotSeparation float64 `yaml:"minSlotSeparation"` // 轨道槽位最小间距
	SlotTries         int     `yaml:"slotTries"`         // 槽位查找最大尝试次数
}

// ForceConfig 力学系数
type ForceConfig struct {
	Attraction    float64 `yaml:"attraction"`    // 径向吸引（朝向轨道半径）
	Tangential    float64 `yaml:"tangential"`    // 切向环绕
	PointerDrag   float64 `yaml:"pointerDrag"`   // 指针速度带动旋转的比例
	CoreRepulsion float64 `yaml:"coreRepulsion"` // 核心区排斥
	Gather        float64 `yaml:"gather"`        // 影响半径外朝锚点的微弱聚拢
	Friction      float64 `yaml:"friction"`      // 每帧速度衰减，必须 < 1
	MaxSpeed      float64 `yaml:"maxSpeed"`      // 速度上限（像素/帧）
	MinDistance   float64 `yaml:"minDistance"`   // 距离除数下限，防止除零
}

// OpacityConfig 透明度参数
type OpacityConfig struct {
	Ease          float64 `yaml:"ease"`          // 指针在场时向目标透明度缓动的速率
	Fade          float64 `yaml:"fade"`          // 指针离开后衰减到 0 的速率
	Falloff       float64 `yaml:"falloff"`       // 目标透明度指数 k（k > 1）
	DrawThreshold float64 `yaml:"drawThreshold"` // 低于该透明度不绘制
}

// AnchorConfig 锚点弹簧参数（harmonica）
type AnchorConfig struct {
	Frequency float64 `yaml:"frequency"` // 角频率
	Damping   float64 `yaml:"damping"`   // 阻尼比，1 为临界阻尼
}

// RenderConfig 渲染参数
type RenderConfig struct {
	Shape         string  `yaml:"shape"`         // "line" 或 "circle"
	Composite     string  `yaml:"composite"`     // "source-over" 或 "lighter"
	BreathePeriod float64 `yaml:"breathePeriod"` // 呼吸函数时间除数（毫秒）
	BreatheAmount float64 `yaml:"breatheAmount"` // 呼吸幅度
	LineLength    float64 `yaml:"lineLength"`    // 线段长度 = baseSize * lineLength
	LineThickness float64 `yaml:"lineThickness"` // 线宽 = baseSize * lineThickness
}

// SparkConfig 火花发射层
type SparkConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Max             int     `yaml:"max"`             // 同时存在的火花上限
	PerMove         int     `yaml:"perMove"`         // 每次移动事件最多生成数量
	MinMoveDistance float64 `yaml:"minMoveDistance"` // 触发发射的最小移动距离
	Life            int     `yaml:"life"`            // 生命（帧）
	Speed           float64 `yaml:"speed"`           // 初速度
	Friction        float64 `yaml:"friction"`        // 每帧速度衰减
	Size            float64 `yaml:"size"`            // 半径
}

// WindowConfig 桌面窗口参数
type WindowConfig struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Overlay bool   `yaml:"overlay"` // 透明、置顶、鼠标穿透的覆盖层窗口
	Debug   bool   `yaml:"debug"`   // 显示调试信息
}

// DefaultEffectConfig 返回默认配置
func DefaultEffectConfig() *EffectConfig {
	return &EffectConfig{
		Particles: ParticleConfig{
			Count:        140,
			MinSize:      0.4,
			MaxSize:      1.6,
			DriftSpeed:   0.8,
			UniformSpawn: 0.2,
			EdgeOffset:   10,
			WrapMargin:   20,
		},
		Zones: ZoneConfig{
			CoreRadius:        30,
			OrbitZone:         260,
			MinSlotSeparation: 18,
			SlotTries:         20,
		},
		Forces: ForceConfig{
			Attraction:    0.6,
			Tangential:    0.08,
			PointerDrag:   0.04,
			CoreRepulsion: 1.2,
			Gather:        0.03,
			Friction:      0.92,
			MaxSpeed:      12,
			MinDistance:   0.5,
		},
		Opacity: OpacityConfig{
			Ease:          0.08,
			Fade:          0.04,
			Falloff:       1.6,
			DrawThreshold: 0.03,
		},
		Anchor: AnchorConfig{
			Frequency: 7.0,
			Damping:   1.0,
		},
		Render: RenderConfig{
			Shape:         ShapeLine,
			Composite:     CompositeSourceOver,
			BreathePeriod: 600,
			BreatheAmount: 0.45,
			LineLength:    6.4,
			LineThickness: 1.5,
		},
		Palette: []string{
			"#22d3ee", // cyan-400
			"#67e8f9", // cyan-300
			"#06b6d4", // cyan-500
			"#3b82f6", // blue-500
			"#2563eb", // blue-600
		},
		Sparks: SparkConfig{
			Enabled:         true,
			Max:             120,
			PerMove:         3,
			MinMoveDistance: 4,
			Life:            36,
			Speed:           1.2,
			Friction:        0.94,
			Size:            1.4,
		},
		Window: WindowConfig{
			Title:  "cursorfx",
			Width:  1280,
			Height: 800,
		},
	}
}

// LoadEffectConfig 从文件加载特效配置
//
// 文件中未出现的字段保留默认值。
func LoadEffectConfig(path string) (*EffectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effect config: %w", err)
	}
	return ParseEffectConfig(data)
}

// ParseEffectConfig 解析 YAML 格式的特效配置并验证
func ParseEffectConfig(data []byte) (*EffectConfig, error) {
	cfg := DefaultEffectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse effect config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid effect config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性，并解析调色板
//
// 检查：
//   - 粒子数量为正，尺寸范围有效
//   - 0 < coreRadius < orbitZone，且轨道槽位区间非空
//   - 摩擦系数在 (0, 1) 内（保证系统耗散）
//   - 目标透明度指数 k > 1
//   - 调色板至少一个颜色，且每个颜色可解析
func (c *EffectConfig) Validate() error {
	p := c.Particles
	if p.Count <= 0 {
		return fmt.Errorf("particle count must be positive, got %d", p.Count)
	}
	if p.MinSize <= 0 || p.MinSize > p.MaxSize {
		return fmt.Errorf("particle size range invalid: min(%.2f) max(%.2f)", p.MinSize, p.MaxSize)
	}
	if p.UniformSpawn < 0 || p.UniformSpawn > 1 {
		return fmt.Errorf("uniformSpawn must be within [0,1], got %.2f", p.UniformSpawn)
	}
	if p.EdgeOffset < 0 || p.WrapMargin < p.EdgeOffset {
		return fmt.Errorf("wrapMargin(%.1f) must be >= edgeOffset(%.1f) >= 0", p.WrapMargin, p.EdgeOffset)
	}

	z := c.Zones
	if z.CoreRadius <= 0 || z.CoreRadius >= z.OrbitZone {
		return fmt.Errorf("zone radii invalid: core(%.1f) orbit(%.1f)", z.CoreRadius, z.OrbitZone)
	}
	if z.CoreRadius+10 >= z.OrbitZone-10 {
		return fmt.Errorf("orbit slot band empty: core(%.1f) orbit(%.1f)", z.CoreRadius, z.OrbitZone)
	}
	if z.SlotTries < 1 {
		return fmt.Errorf("slotTries must be at least 1, got %d", z.SlotTries)
	}

	f := c.Forces
	if f.Friction <= 0 || f.Friction >= 1 {
		return fmt.Errorf("friction must be within (0,1), got %.3f", f.Friction)
	}
	if f.Attraction < 0 || f.Tangential < 0 || f.CoreRepulsion < 0 || f.Gather < 0 {
		return fmt.Errorf("force coefficients must not be negative")
	}
	if f.MaxSpeed <= 0 || f.MinDistance <= 0 {
		return fmt.Errorf("maxSpeed and minDistance must be positive")
	}

	o := c.Opacity
	if o.Ease <= 0 || o.Ease > 1 || o.Fade <= 0 || o.Fade > 1 {
		return fmt.Errorf("opacity ease(%.3f) and fade(%.3f) must be within (0,1]", o.Ease, o.Fade)
	}
	if o.Falloff <= 1 {
		return fmt.Errorf("opacity falloff must be > 1, got %.2f", o.Falloff)
	}

	switch c.Render.Shape {
	case ShapeLine, ShapeCircle:
	default:
		return fmt.Errorf("unknown render shape %q", c.Render.Shape)
	}
	switch c.Render.Composite {
	case CompositeSourceOver, CompositeLighter:
	default:
		return fmt.Errorf("unknown composite mode %q", c.Render.Composite)
	}
	if c.Render.BreathePeriod <= 0 {
		return fmt.Errorf("breathePeriod must be positive")
	}

	if c.Sparks.Enabled {
		s := c.Sparks
		if s.Max <= 0 || s.PerMove <= 0 || s.Life <= 0 {
			return fmt.Errorf("sparks max, perMove and life must be positive")
		}
		if s.Friction <= 0 || s.Friction >= 1 {
			return fmt.Errorf("spark friction must be within (0,1), got %.3f", s.Friction)
		}
	}

	palette, err := parsePalette(c.Palette)
	if err != nil {
		return err
	}
	c.palette = palette

	return nil
}

// PaletteColors 返回解析后的调色板
//
// 未经 Validate 的配置返回 nil。
func (c *EffectConfig) PaletteColors() []color.NRGBA {
	return c.palette
}

func parsePalette(hexes []string) ([]color.NRGBA, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("palette must contain at least one color")
	}

	colors := make([]color.NRGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette color %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		colors = append(colors, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return colors, nil
}
