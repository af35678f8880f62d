package mdc

const (
	labelPartCounter1 = "M30 #1"
	labelPartCounter2 = "M30 #2"
)

// ReadPartCount возвращает сумму счетчиков деталей M30 #1 (Q402) и M30 #2 (Q403).
// Счетчик, ответ которого не прошел проверку, дает в сумму 0.
func (a *MdcAdapter) ReadPartCount() (int, error) {
	counters := []struct {
		command string
		label   string
	}{
		{cmdPartCounter1, labelPartCounter1},
		{cmdPartCounter2, labelPartCounter2},
	}

	total := 0
	for _, c := range counters {
		n, err := a.readLabeledCount(c.command, c.label)
		if err != nil {
			return 0, err
		}
		total += n.Or(0)
	}
	return total, nil
}
