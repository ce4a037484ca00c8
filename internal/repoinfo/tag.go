package repoinfo

// Identity is the name and email recorded on an annotated tag.
type Identity struct {
	Name  string
	Email string
}

// TagObject is the object a tag reference resolves to.
//
// The set of implementations is closed: AnnotatedTagObject and ReferenceObject,
// passed either by value or by pointer.
type TagObject interface {
	// ObjectHash returns the hex digest of the underlying object.
	ObjectHash() string
	// detached returns a value-typed copy sharing no memory with the receiver.
	detached() TagObject
	tagger() *Identity
}

// AnnotatedTagObject is a tag object carrying metadata. Tagger is nil when the
// object records no tagger identity.
type AnnotatedTagObject struct {
	Hash   string
	Tagger *Identity
}

// ObjectHash returns the digest of the tag object itself.
func (object AnnotatedTagObject) ObjectHash() string {
	return object.Hash
}

func (object AnnotatedTagObject) detached() TagObject {
	if object.Tagger != nil {
		taggerCopy := *object.Tagger
		object.Tagger = &taggerCopy
	}
	return object
}

func (object AnnotatedTagObject) tagger() *Identity {
	return object.Tagger
}

// ReferenceObject is the commit a lightweight tag points at directly.
type ReferenceObject struct {
	Hash string
}

// ObjectHash returns the digest of the referenced object.
func (object ReferenceObject) ObjectHash() string {
	return object.Hash
}

func (object ReferenceObject) detached() TagObject {
	return object
}

func (ReferenceObject) tagger() *Identity {
	return nil
}

// Tag names a tag and the object it resolves to.
type Tag struct {
	Name   string
	Object TagObject
}

func (tag Tag) objectHash() string {
	if tag.Object == nil {
		return ""
	}
	return tag.Object.ObjectHash()
}

// clone deep-copies the tag and normalizes pointer objects to values; a nil
// pointer object becomes an absent object.
func (tag Tag) clone() Tag {
	return Tag{Name: tag.Name, Object: detachObject(tag.Object)}
}

func detachObject(object TagObject) TagObject {
	switch typedObject := object.(type) {
	case nil:
		return nil
	case *AnnotatedTagObject:
		if typedObject == nil {
			return nil
		}
	case *ReferenceObject:
		if typedObject == nil {
			return nil
		}
	}
	return object.detached()
}

// taggerIdentity resolves the author of a tag; only annotated objects with a
// recorded tagger yield a non-empty identity.
func taggerIdentity(tag *Tag) Identity {
	if tag == nil || tag.Object == nil {
		return Identity{}
	}
	tagger := tag.Object.tagger()
	if tagger == nil {
		return Identity{}
	}
	return Identity{Name: tagger.Name, Email: tagger.Email}
}
