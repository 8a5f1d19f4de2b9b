package session

// maxUndoDepth глубина undo-стека в рамках сессии.
// Undo — это UX-бюджет, а не гарантия долговечности: при переполнении
// самые старые записи молча отбрасываются.
const maxUndoDepth = 20

// UndoHistory бюджетированный стек прошлых packed-progress состояний.
// Бюджет <= 0 означает безлимитные undo; Used только растёт и
// сбрасывается лишь полным resetAll.
type UndoHistory struct {
	Stack  []string // прошлые ProgressB64, oldest -> newest
	Used   int      // израсходовано undo за сессию
	Budget int      // лимит undo на сессию, <= 0 = безлимит
}

// Push добавляет прошлое состояние на вершину стека.
// Дедуплицирует подряд идущие no-op push (prev равен вершине)
// и ограничивает глубину maxUndoDepth.
func (h *UndoHistory) Push(prevB64 string) {
	if n := len(h.Stack); n > 0 && h.Stack[n-1] == prevB64 {
		return
	}

	h.Stack = append(h.Stack, prevB64)
	if len(h.Stack) > maxUndoDepth {
		h.Stack = h.Stack[len(h.Stack)-maxUndoDepth:]
	}
}

// PopBudgeted атомарно снимает вершину стека и инкрементирует Used.
// Возвращает ("", false), если стек пуст или бюджет исчерпан: вызывающий
// наблюдает либо состояние до pop, либо после, частичных обновлений нет.
func (h *UndoHistory) PopBudgeted() (string, bool) {
	if len(h.Stack) == 0 {
		return "", false
	}
	if h.Budget > 0 && h.Used >= h.Budget {
		return "", false
	}

	top := h.Stack[len(h.Stack)-1]
	h.Stack = h.Stack[:len(h.Stack)-1]
	h.Used++

	return top, true
}

// Left возвращает оставшееся количество undo; -1 при безлимитном бюджете
func (h *UndoHistory) Left() int {
	if h.Budget <= 0 {
		return -1
	}
	left := h.Budget - h.Used
	if left < 0 {
		return 0
	}
	return left
}

// ResetKeepBudget очищает стек, сохраняя Used: начать страницу заново
// не значит получить свежий бюджет undo
func (h *UndoHistory) ResetKeepBudget() {
	h.Stack = nil
}

// ResetAll очищает и стек, и счётчик (полный сброс локального состояния)
func (h *UndoHistory) ResetAll() {
	h.Stack = nil
	h.Used = 0
}
