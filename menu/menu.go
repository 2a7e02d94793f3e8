package menu

// ToggleCheckmark inverts the checked state of the first [Checkmark] with the
// given id and returns the new state. The second return value reports whether
// a matching node was found anywhere in the tree.
func ToggleCheckmark(nodes []Node, id string) (bool, bool) {
	for _, n := range nodes {
		switch node := n.(type) {
		case *Checkmark:
			if node.ID == id {
				node.Checked = !node.Checked
				return node.Checked, true
			}
		case *SubMenu:
			if checked, ok := ToggleCheckmark(node.Children, id); ok {
				return checked, true
			}
		}
	}

	return false, false
}

// SelectRadio sets the selection of the first [RadioGroup] with the given id
// for which index is in range, and returns the id of the now-selected option.
//
// A group whose id matches but whose option count is too small does not stop
// the search; traversal continues past it to any later match.
func SelectRadio(nodes []Node, groupID string, index int) (string, bool) {
	for _, n := range nodes {
		switch node := n.(type) {
		case *RadioGroup:
			if node.ID == groupID && index >= 0 && index < len(node.Options) {
				node.Selected = index
				return node.Options[index].ID, true
			}
		case *SubMenu:
			if optionID, ok := SelectRadio(node.Children, groupID, index); ok {
				return optionID, true
			}
		}
	}

	return "", false
}

// SetCheckmark sets the checked state of the first [Checkmark] with the given
// id without toggling. It reports whether a matching node was found.
func SetCheckmark(nodes []Node, id string, checked bool) bool {
	for _, n := range nodes {
		switch node := n.(type) {
		case *Checkmark:
			if node.ID == id {
				node.Checked = checked
				return true
			}
		case *SubMenu:
			if SetCheckmark(node.Children, id, checked) {
				return true
			}
		}
	}

	return false
}

// SetRadioSelected sets the selection of the first [RadioGroup] with the
// given id for which index is in range. It reports whether the selection was
// applied. Out-of-range indices skip the group, same as [SelectRadio].
func SetRadioSelected(nodes []Node, groupID string, index int) bool {
	_, ok := SelectRadio(nodes, groupID, index)
	return ok
}

// AppendChild appends child to the first [SubMenu] with the given label.
// It reports whether the submenu was found; the target container is never
// created implicitly.
func AppendChild(nodes []Node, label string, child Node) bool {
	for _, n := range nodes {
		submenu, ok := n.(*SubMenu)
		if !ok {
			continue
		}

		if submenu.Label == label {
			submenu.Children = append(submenu.Children, child)
			return true
		}

		if AppendChild(submenu.Children, label, child) {
			return true
		}
	}

	return false
}

// AppendRadioOption appends opt to the first [RadioGroup] with the given id.
// It reports whether the group was found.
func AppendRadioOption(nodes []Node, groupID string, opt RadioOption) bool {
	for _, n := range nodes {
		switch node := n.(type) {
		case *RadioGroup:
			if node.ID == groupID {
				node.Options = append(node.Options, opt)
				return true
			}
		case *SubMenu:
			if AppendRadioOption(node.Children, groupID, opt) {
				return true
			}
		}
	}

	return false
}
