package importer

import (
	"strings"

	"github.com/managed-module/mmimport/internal/metadata"
)

// scopeKind is the classification a resolution scope falls into relative
// to the module pair being merged.
type scopeKind int

const (
	scopeSource scopeKind = iota
	scopeTarget
	scopeForeign
)

// classifyScope decides whether a resolution scope refers to the source
// module, the target module, or a foreign assembly. It is
// used by the Type Resolver to avoid re-importing the source's
// self-references and to redirect them to target.
func (imp *Importer) classifyScope(scope metadata.ResolutionScope) (scopeKind, error) {
	switch s := scope.(type) {
	case *metadata.AssemblyRef:
		switch s.FullName() {
		case imp.source.Assembly.FullName():
			return scopeSource, nil
		case imp.target.Assembly.FullName():
			return scopeTarget, nil
		default:
			return scopeForeign, nil
		}

	case *metadata.ModuleRef:
		if strings.EqualFold(s.Name, imp.source.Name) {
			return scopeSource, nil
		}
		if strings.EqualFold(s.Name, imp.target.Name) {
			return scopeTarget, nil
		}
		return scopeForeign, nil

	case *metadata.ModuleDef:
		if s == imp.source {
			return scopeSource, nil
		}
		if s == imp.target {
			return scopeTarget, nil
		}
		return scopeForeign, nil

	default:
		return 0, errInvariant("unknown resolution scope kind %T", scope)
	}
}

// classifyTypeRefScope classifies a TypeRef's own scope, which may itself
// be a nested TypeRef.
func (imp *Importer) classifyTypeRefScope(scope metadata.TypeRefScope) (scopeKind, error) {
	switch s := scope.(type) {
	case *metadata.AssemblyRef, *metadata.ModuleRef, *metadata.ModuleDef:
		return imp.classifyScope(s.(metadata.ResolutionScope))
	case *metadata.TypeRef:
		return 0, errInvariant("classifyTypeRefScope called with a non-outermost TypeRef scope")
	default:
		return 0, errInvariant("unknown type-ref scope kind %T", scope)
	}
}
