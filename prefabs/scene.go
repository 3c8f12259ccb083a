package prefabs

// SceneSpec lists the cameras and sprites of a scene.
type SceneSpec struct {
	Name     string            `yaml:"name"`
	Pipeline string            `yaml:"pipeline"`
	Cameras  []SceneCameraSpec `yaml:"cameras"`
	Sprites  []SpriteSpec      `yaml:"sprites"`
}

// SceneCameraSpec places a camera prefab. A non-nil Settings block replaces
// the prefab's settings for this instance.
type SceneCameraSpec struct {
	Prefab   string              `yaml:"prefab"`
	Depth    *int                `yaml:"depth"`
	Viewport *ViewportSpec       `yaml:"viewport"`
	Settings *CameraSettingsSpec `yaml:"settings"`
}

type SpriteSpec struct {
	Name      string        `yaml:"name"`
	Image     string        `yaml:"image"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	Color     *YAMLColor    `yaml:"color"`
	OriginX   float64       `yaml:"origin_x"`
	OriginY   float64       `yaml:"origin_y"`
	Transform TransformSpec `yaml:"transform"`
	Layer     int           `yaml:"layer"`
	// LayerMask selects the rendering layers the sprite belongs to.
	LayerMask uint32 `yaml:"layer_mask"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
