package grammar

import "slices"

// matcher holds the state of one parse: the words being matched and the
// position of the first word not yet consumed. Words are only ever consumed
// from the front, so every word before pos has been consumed.
type matcher struct {
	words []string
	pos   int
	trace *trace
}

// trace records the tokens that failed at the furthest position reached.
type trace struct {
	pos    int
	failed []Token
}

// match attempts to consume the next word with t. On success the word is
// consumed, t's children are matched against the remaining words, and the
// outcome is recorded in parent according to t's store strategy. On failure
// nothing is consumed and parent is untouched.
func (m *matcher) match(t Token, parent Result) bool {
	if m.pos >= len(m.words) || !t.recognizer.Recognize(m.words[m.pos]) {
		m.fail(t)

		return false
	}

	word := m.words[m.pos]
	m.pos++

	tree := Result{}
	m.chain(t, tree)

	switch t.store {
	case StoreSubtree:
		parent[t.name] = Value{kind: KindSubtree, tree: tree}

	case StoreLeaf:
		parent[t.name] = Value{kind: KindLeaf, word: word}

	case StoreVarArg:
		prev := parent[t.name].words
		parent[t.name] = Value{
			kind:  KindVarArg,
			words: append(slices.Clip(prev), word),
		}
	}

	return true
}

// chain matches t's children into tree using t's chain strategy.
func (m *matcher) chain(t Token, tree Result) {
	switch t.chain {
	case ChainBranch:
		for _, child := range t.children {
			if m.match(child, tree) {
				return
			}
		}

	case ChainList:
		for _, child := range t.children {
			if child.store == StoreVarArg {
				for m.match(child, tree) {
				}

				continue
			}

			m.match(child, tree)
		}

	case ChainSet:
		// Every successful match consumes a word, so this terminates.
		for progress := true; progress; {
			progress = false

			for _, child := range t.children {
				if m.match(child, tree) {
					progress = true
				}
			}
		}

	case ChainSingle:
		m.match(t.children[0], tree)
	}
}

func (m *matcher) fail(t Token) {
	if m.trace == nil {
		return
	}

	if m.pos != m.trace.pos {
		m.trace.pos = m.pos
		m.trace.failed = m.trace.failed[:0]
	}

	m.trace.failed = append(m.trace.failed, t)
}
