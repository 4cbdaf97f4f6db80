package membership

import "github.com/magabrotheeeer/gym-manager/internal/models"

var addons = []models.Addon{
	{ID: "personal-training", Name: "Personal Training", Price: 500, Unit: "session",
		Description: "One-on-one training with certified trainers"},
	{ID: "diet-plan", Name: "Diet Plan", Price: 1000, Unit: "month",
		Description: "Customized nutrition plans by dietitians"},
	{ID: "supplements", Name: "Supplements Package", Price: 1000, Unit: "month",
		Description: "Premium protein and supplement package"},
}

var (
	bodybuildingBase = []string{
		"Access to all gym equipment",
		"No access to cardio machines",
		"Basic workout guidance",
		"Locker facility",
		"Free water",
	}
	cardioBase = []string{
		"Access to all gym equipment",
		"Full cardio section access",
		"Treadmill, elliptical, cycling",
		"Basic workout guidance",
		"Locker facility",
		"Free water",
	}
)

func with(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// defaultPlans каталог, которым заполняется пустая база.
func defaultPlans() []models.Membership {
	plans := []models.Membership{
		{Name: "Bodybuilding Plan - Monthly", Duration: 1, Price: 1000, Category: "bodybuilding",
			Features: with(bodybuildingBase)},
		{Name: "Bodybuilding Plan - Quarterly", Duration: 3, Price: 2600, Category: "bodybuilding",
			Features: with(bodybuildingBase, "Monthly progress tracking")},
		{Name: "Bodybuilding Plan - Half Yearly", Duration: 6, Price: 4900, Category: "bodybuilding",
			Features: with(bodybuildingBase, "Monthly progress tracking", "Nutrition guidance")},
		{Name: "Bodybuilding Plan - Yearly", Duration: 12, Price: 9600, Category: "bodybuilding",
			Features: with(bodybuildingBase, "Monthly progress tracking", "Nutrition guidance",
				"Priority booking for classes", "Annual health checkup")},
		{Name: "Bodybuilding + Cardio Plan - Monthly", Duration: 1, Price: 1400, Category: "bodybuilding-cardio",
			Features: with(cardioBase)},
		{Name: "Bodybuilding + Cardio Plan - Quarterly", Duration: 3, Price: 3700, Category: "bodybuilding-cardio",
			Features: with(cardioBase, "Monthly progress tracking", "Group cardio classes")},
		{Name: "Bodybuilding + Cardio Plan - Half Yearly", Duration: 6, Price: 6800, Category: "bodybuilding-cardio",
			Features: with(cardioBase, "Monthly progress tracking", "Group cardio classes", "Nutrition guidance",
				"Personal training session (1 per month)")},
		{Name: "Bodybuilding + Cardio Plan - Yearly", Duration: 12, Price: 12800, Category: "bodybuilding-cardio",
			Badge: "Most Popular",
			Features: with(cardioBase, "Monthly progress tracking", "Group cardio classes", "Nutrition guidance",
				"Personal training sessions (2 per month)", "Priority booking for all classes",
				"Annual health checkup", "Diet consultation")},
	}
	for i := range plans {
		plans[i].PricePerMonth = plans[i].Price / plans[i].Duration
	}
	return plans
}
