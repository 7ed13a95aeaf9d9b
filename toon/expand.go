package toon

import "strings"

// insert adds a decoded member to an object. With path expansion active,
// unquoted dotted identifier keys fan out into nested objects; quoted
// keys never expand. Duplicate keys are a schema error in strict mode and
// overwrite in place otherwise.
func (d *decoder) insert(obj *Value, key string, quoted bool, val *Value, line int) error {
	if d.opts.ExpandPaths && !quoted && isExpandablePath(key) {
		return d.setNested(obj, strings.Split(key, "."), val, line)
	}
	if d.opts.Strict && obj.Get(key) != nil {
		return schemaErrf(line, key, "duplicate key")
	}
	obj.Set(key, val)
	return nil
}

// setNested walks an expanded path, creating intermediate objects, and
// places the value at the leaf. Two expanded paths sharing a prefix merge
// into one subtree.
func (d *decoder) setNested(obj *Value, path []string, val *Value, line int) error {
	cur := obj
	for i := 0; i < len(path)-1; i++ {
		seg := path[i]
		next := cur.Get(seg)
		if next == nil || next.Kind() != KindObject {
			if next != nil && d.opts.Strict {
				return schemaErrf(line, strings.Join(path[:i+1], "."),
					"expanded path collides with non-object value")
			}
			next = Obj()
			cur.Set(seg, next)
		}
		cur = next
	}

	last := path[len(path)-1]
	if existing := cur.Get(last); existing != nil {
		merged, err := d.mergeValues(existing, val, strings.Join(path, "."), line)
		if err != nil {
			return err
		}
		cur.Set(last, merged)
		return nil
	}
	cur.Set(last, val)
	return nil
}

// mergeValues combines two values landing on the same expanded path.
// Objects merge field by field; anything else conflicts.
func (d *decoder) mergeValues(existing, incoming *Value, path string, line int) (*Value, error) {
	if existing.Kind() == KindObject && incoming.Kind() == KindObject {
		fields, _ := incoming.AsObj()
		for _, f := range fields {
			if prev := existing.Get(f.Key); prev != nil {
				merged, err := d.mergeValues(prev, f.Value, path+"."+f.Key, line)
				if err != nil {
					return nil, err
				}
				existing.Set(f.Key, merged)
			} else {
				existing.Set(f.Key, f.Value)
			}
		}
		return existing, nil
	}
	if d.opts.Strict {
		return nil, schemaErrf(line, path, "conflicting values for expanded path")
	}
	return incoming, nil
}
