package config

// Config is the run configuration assembled from command-line flags.
type Config struct {
	InputPath    string
	OutputDir    string
	EditorConfig string
	Scroll       float64
	Hidden       []string
	Preview      bool
	StampQR      bool
	Workers      int
	ShowStats    bool
	BuildVersion string
	Editor       Editor
}
