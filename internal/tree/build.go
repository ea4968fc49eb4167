package tree

import "strings"

// Build constructs a static tree mirroring the provided slash-separated
// relative paths. The root node stands for the directory chosen by the user.
func Build(rootName string, files []string) *Node {
	root := &Node{
		Name:  rootName,
		IsDir: true,
		Open:  true,
	}

	for _, rel := range files {
		rel = strings.Trim(rel, "/")
		if rel == "" {
			continue
		}
		insert(root, rel)
	}

	root.SortRecursive()
	return root
}

func insert(root *Node, rel string) {
	parts := strings.Split(rel, "/")
	current := root
	currentPath := ""

	for i, part := range parts {
		currentPath = join(currentPath, part)
		isLeaf := i == len(parts)-1
		child := current.ChildByName(part)
		if child == nil {
			child = &Node{
				Name:  part,
				Path:  currentPath,
				IsDir: !isLeaf,
			}
			current.AddChild(child)
		}
		if isLeaf {
			return
		}
		current = child
	}
}
