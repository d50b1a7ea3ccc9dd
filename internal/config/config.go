// Package config handles loading and saving the landing scene settings.
package config

// Config holds all settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Controls ControlsConfig `yaml:"controls"`
	Scene    SceneConfig    `yaml:"scene"`
	Outline  OutlineConfig  `yaml:"outline"`
	Assets   AssetsConfig   `yaml:"assets"`
	Audio    AudioConfig    `yaml:"audio"`
	Menu     []MenuConfig   `yaml:"menu"`
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    DebugConfig    `yaml:"debug"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig describes the perspective camera.
type CameraConfig struct {
	FOV      float32 `yaml:"fov"` // vertical, degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"`
}

// ControlsConfig holds orbit control settings.
type ControlsConfig struct {
	EnableZoom      bool    `yaml:"enable_zoom"`
	EnableRotate    bool    `yaml:"enable_rotate"`
	EnablePan       bool    `yaml:"enable_pan"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
	EnableDamping   bool    `yaml:"enable_damping"`
	DampingFactor   float32 `yaml:"damping_factor"`
	// ResumeSeconds is how long auto-rotation takes to reach full speed
	// after the pointer leaves a menu.
	ResumeSeconds float32 `yaml:"resume_seconds"`
}

// SceneConfig holds background content settings.
type SceneConfig struct {
	StarCount  int         `yaml:"star_count"`
	StarSpread float32     `yaml:"star_spread"`
	StarRadius float32     `yaml:"star_radius"`
	Seed       int64       `yaml:"seed"` // 0 picks a time-based seed
	Background [3]float32  `yaml:"background"`
	Ambient    float32     `yaml:"ambient"`
	KeyLight   LightConfig `yaml:"key_light"`
}

// LightConfig describes a point light.
type LightConfig struct {
	Position  [3]float32 `yaml:"position"`
	Color     [3]float32 `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
}

// OutlineConfig holds highlight outline settings.
type OutlineConfig struct {
	Color     [3]float32 `yaml:"color"`
	Thickness float32    `yaml:"thickness"` // pixels
	Strength  float32    `yaml:"strength"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	Root       string `yaml:"root"`
	TitleFont  string `yaml:"title_font"` // empty uses the built-in font
	Background string `yaml:"background"`
}

// AudioConfig holds UI sound settings.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	HoverSound string  `yaml:"hover_sound"`
	OpenSound  string  `yaml:"open_sound"`
}

// MenuConfig describes one armillary-sphere menu and its panel.
type MenuConfig struct {
	ID         string        `yaml:"id"`
	Title      string        `yaml:"title"`
	Position   [3]float32    `yaml:"position"`
	Faces      []string      `yaml:"faces"`
	RingColors [3][3]float32 `yaml:"ring_colors"`
	LightColor [3]float32    `yaml:"light_color"`
	Panel      PanelConfig   `yaml:"panel"`
}

// PanelConfig holds the text shown when a menu is opened.
type PanelConfig struct {
	Heading string   `yaml:"heading"`
	Body    []string `yaml:"body"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"` // F12 captures land here
}

var defaultRings = [3][3]float32{
	{1.0, 0.07, 0.94},
	{1.0, 0.85, 0.94},
	{0.71, 0.07, 1.0},
}

var pupFaces = []string{
	"pups/IMG-0167.jpg",
	"pups/IMG-1102.jpg",
	"pups/IMG-1684.jpg",
	"pups/IMG-1690.jpg",
	"pups/IMG-2108.jpg",
	"pups/IMG-2111.jpg",
}

// Default returns a Config with the stock landing scene.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Armillary",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Distance: 30,
		},
		Controls: ControlsConfig{
			EnableZoom:      false,
			EnableRotate:    true,
			EnablePan:       true,
			AutoRotate:      true,
			AutoRotateSpeed: -0.5,
			EnableDamping:   true,
			DampingFactor:   0.05,
			ResumeSeconds:   1.5,
		},
		Scene: SceneConfig{
			StarCount:  200,
			StarSpread: 100,
			StarRadius: 0.25,
			Background: [3]float32{0.01, 0.01, 0.03},
			Ambient:    0.1,
			KeyLight: LightConfig{
				Position:  [3]float32{10, 10, 10},
				Color:     [3]float32{1, 1, 1},
				Intensity: 100,
			},
		},
		Outline: OutlineConfig{
			Color:     [3]float32{1, 1, 1},
			Thickness: 2,
			Strength:  3,
		},
		Assets: AssetsConfig{
			Root: "res",
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.6,
		},
		Menu: []MenuConfig{
			{
				ID: "about", Title: "About", Position: [3]float32{-14, 6, 0},
				Faces: pupFaces, RingColors: defaultRings, LightColor: [3]float32{1, 0.4, 0.9},
				Panel: PanelConfig{Heading: "About", Body: []string{"Hi, welcome to my corner of the internet."}},
			},
			{
				ID: "projects", Title: "Projects", Position: [3]float32{14, 6, 0},
				Faces: pupFaces, RingColors: defaultRings, LightColor: [3]float32{0.4, 0.8, 1},
				Panel: PanelConfig{Heading: "Projects", Body: []string{"Things I have built and am building."}},
			},
			{
				ID: "pups", Title: "Pups", Position: [3]float32{-14, -8, 0},
				Faces: pupFaces, RingColors: defaultRings, LightColor: [3]float32{1, 0.8, 0.4},
				Panel: PanelConfig{Heading: "Pups", Body: []string{"The good dogs of the household."}},
			},
			{
				ID: "social", Title: "Social", Position: [3]float32{14, -8, 0},
				Faces: pupFaces, RingColors: defaultRings, LightColor: [3]float32{0.5, 1, 0.6},
				Panel: PanelConfig{Heading: "Social", Body: []string{"Where to find me elsewhere."}},
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}
