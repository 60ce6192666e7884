package prompt

// Script answers prompts from pre-queued responses, in order. It serves
// tests and non-interactive automation. An exhausted script cancels,
// mimicking a user dismissing an unexpected prompt.
type Script struct {
	selects []scriptAnswer[string]
	multis  []scriptAnswer[[]string]
}

type scriptAnswer[T any] struct {
	value     T
	cancelled bool
}

// NewScript creates an empty script; queue answers before use.
func NewScript() *Script {
	return &Script{}
}

// WillSelect queues an answer for the next Select call.
func (s *Script) WillSelect(choice string) *Script {
	s.selects = append(s.selects, scriptAnswer[string]{value: choice})
	return s
}

// WillCancelSelect queues a cancellation for the next Select call.
func (s *Script) WillCancelSelect() *Script {
	s.selects = append(s.selects, scriptAnswer[string]{cancelled: true})
	return s
}

// WillSelectMany queues an answer for the next SelectMany call.
func (s *Script) WillSelectMany(choices ...string) *Script {
	s.multis = append(s.multis, scriptAnswer[[]string]{value: choices})
	return s
}

// WillCancelSelectMany queues a cancellation for the next SelectMany call.
func (s *Script) WillCancelSelectMany() *Script {
	s.multis = append(s.multis, scriptAnswer[[]string]{cancelled: true})
	return s
}

// Select implements schedule.Prompter.
func (s *Script) Select(title string, options []string) (string, bool, error) {
	if len(s.selects) == 0 {
		return "", false, nil
	}
	answer := s.selects[0]
	s.selects = s.selects[1:]
	if answer.cancelled {
		return "", false, nil
	}
	return answer.value, true, nil
}

// SelectMany implements schedule.Prompter.
func (s *Script) SelectMany(title string, options []string) ([]string, bool, error) {
	if len(s.multis) == 0 {
		return nil, false, nil
	}
	answer := s.multis[0]
	s.multis = s.multis[1:]
	if answer.cancelled {
		return nil, false, nil
	}
	return answer.value, true, nil
}
