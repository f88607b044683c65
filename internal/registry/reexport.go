package registry

import "path/filepath"

// FollowExport resolves a name visible at fileAbsPath (either defined
// locally or re-exported from another module) to the ComponentDefinition id
// of its original definition site. ok is false when the name is neither
// defined nor re-exported along the chain. A ReexportCycleRecord, naming the
// file and module specifier at which following stopped, is recorded only
// when the chain would take more than MaxReexportDepth hops.
func (r *Registry) FollowExport(projectRoot, tsconfigPath, fileAbsPath, name string, idx FileIndex) (string, bool) {
	return r.followExport(projectRoot, tsconfigPath, fileAbsPath, name, idx, 0)
}

func (r *Registry) followExport(projectRoot, tsconfigPath, fileAbsPath, name string, idx FileIndex, depth int) (string, bool) {
	if depth > MaxReexportDepth {
		r.recordCycle(fileAbsPath, name, depth)
		return "", false
	}

	ex, ok := idx.Extraction(fileAbsPath)
	if !ok {
		return "", false
	}

	for _, def := range ex.LocalDefinitions {
		if def.Name == name && (def.Exported || name == "default") {
			d := r.Define(projectRoot, relPath(projectRoot, fileAbsPath), name, nil)
			return d.ID, true
		}
	}

	for _, re := range ex.Reexports {
		if re.IsStar {
			if id, ok := r.followViaSpecifier(projectRoot, tsconfigPath, fileAbsPath, re.ModuleSpecifier, name, idx, depth); ok {
				return id, true
			}
			continue
		}
		if re.ExportedName == name {
			if id, ok := r.followViaSpecifier(projectRoot, tsconfigPath, fileAbsPath, re.ModuleSpecifier, re.OriginalName, idx, depth); ok {
				return id, true
			}
		}
	}

	return "", false
}

func (r *Registry) followViaSpecifier(projectRoot, tsconfigPath, fromFile, specifier, name string, idx FileIndex, depth int) (string, bool) {
	if depth+1 > MaxReexportDepth {
		r.recordCycle(fromFile, specifier, depth+1)
		return "", false
	}

	target, ok := r.resolver.Resolve(fromFile, specifier, tsconfigPath)
	if !ok {
		return "", false
	}

	targetProjectRoot := idx.ProjectRoot(target)
	if targetProjectRoot == "" {
		targetProjectRoot = projectRoot
	}
	targetTSConfig := idx.TSConfigPath(target)

	return r.followExport(targetProjectRoot, targetTSConfig, target, name, idx, depth+1)
}

// relPath returns abs expressed relative to root with POSIX separators,
// falling back to abs unchanged if it is not inside root.
func relPath(root, abs string) string {
	rel, err := filepath.Rel(root, abs)
	if err != nil || len(rel) >= 2 && rel[:2] == ".." {
		return abs
	}
	return filepath.ToSlash(rel)
}
