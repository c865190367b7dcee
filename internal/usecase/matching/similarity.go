package matching

// InterestBonus - надбавка к оценке кандидата с реакцией INTERESSE на проект.
const InterestBonus = 0.1

// Score считает совпавшие метки вакансии и кандидата. Повторы меток учитываются один раз.
func Score(required, candidate []string, interested bool) float64 {
	if len(required) == 0 || len(candidate) == 0 {
		return 0
	}

	have := make(map[string]struct{}, len(candidate))
	for _, tag := range candidate {
		have[tag] = struct{}{}
	}

	seen := make(map[string]struct{}, len(required))
	matched := 0
	for _, tag := range required {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if _, ok := have[tag]; ok {
			matched++
		}
	}

	base := float64(matched)
	if interested {
		return base + base*InterestBonus
	}
	return base
}
