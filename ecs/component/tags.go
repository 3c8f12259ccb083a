package component

// Prefab records the prefab an entity was built from, so it can be rebuilt
// or refreshed when that prefab changes on disk.
type Prefab struct {
	Name string
}

var PrefabComponent = NewComponent[Prefab]()

// Name tags an entity so others can refer to it, for example as a camera
// follow target.
type NameTag struct {
	Name string
}

var NameTagComponent = NewComponent[NameTag]()
