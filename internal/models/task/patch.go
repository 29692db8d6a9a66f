package task

type PatchKind int

const (
	PatchFields PatchKind = iota
	PatchCategory
)

func (k PatchKind) String() string {
	switch k {
	case PatchFields:
		return "fields"
	case PatchCategory:
		return "category"
	default:
		return "unknown"
	}
}

// Patch - обновление расширенной задачи: либо title/description, либо категория
type Patch struct {
	Kind     PatchKind
	Fields   TaskUpdate
	Category TaskCategory
}

func FieldsPatch(update TaskUpdate) Patch {
	return Patch{Kind: PatchFields, Fields: update}
}

func CategoryPatch(category TaskCategory) Patch {
	return Patch{Kind: PatchCategory, Category: category}
}

// Options переводит патч в набор опций обновления
func (p Patch) Options() []TaskWithFileOption {
	switch p.Kind {
	case PatchCategory:
		return []TaskWithFileOption{WithCategory(p.Category.Category)}
	default:
		return []TaskWithFileOption{WithTaskOptions(FromUpdateNonEmpty(p.Fields)...)}
	}
}
