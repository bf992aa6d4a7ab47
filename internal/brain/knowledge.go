package brain

import "strings"

// Entry is one knowledge-base fact. An entry matches when the lower-cased
// input contains any of its keywords.
type Entry struct {
	Keywords []string
	Answer   string
}

// facts is ordered; the first matching entry wins. The sequence is loaded
// once and never mutated.
var facts = []Entry{
	// General health
	{
		Keywords: []string{"what is health"},
		Answer:   "Health is a state of complete physical, mental, and social well-being, not just the absence of disease.",
	},
	{
		Keywords: []string{"why is health monitoring important", "monitor health"},
		Answer:   "Regular health monitoring helps detect problems early and maintain a healthy lifestyle.",
	},
	{
		Keywords: []string{"how often should i check my health", "check health"},
		Answer:   "Basic vitals can be checked daily, while full health checkups are recommended every 6 to 12 months.",
	},

	// Heart rate
	{
		Keywords: []string{"what is heart rate"},
		Answer:   "Heart rate is the number of times your heart beats per minute.",
	},
	{
		Keywords: []string{"what is normal heart rate", "normal hr"},
		Answer:   "A normal resting heart rate for adults is between 60 and 100 beats per minute.",
	},
	{
		Keywords: []string{"what causes high heart rate", "high heart rate"},
		Answer:   "Exercise, stress, fever, dehydration, anxiety, or medical conditions can increase heart rate.",
	},

	// Oxygen saturation
	{
		Keywords: []string{"what is spo2", "oxygen"},
		Answer:   "SpO2 measures the oxygen saturation level in your blood.",
	},
	{
		Keywords: []string{"what is normal oxygen level", "normal spo2"},
		Answer:   "Normal oxygen saturation levels range from 95 to 100 percent.",
	},
	{
		Keywords: []string{"what does low spo2 mean", "low spo2"},
		Answer:   "Low oxygen levels may indicate breathing or lung-related issues.",
	},

	// Body temperature
	{
		Keywords: []string{"what is normal body temperature", "normal temp"},
		Answer:   "Normal body temperature ranges from 36.5 to 37.5 degrees Celsius.",
	},
	{
		Keywords: []string{"what is fever"},
		Answer:   "Fever occurs when body temperature rises above 38 degrees Celsius.",
	},
	{
		Keywords: []string{"what should i do if i have fever", "have fever"},
		Answer:   "Rest, stay hydrated, monitor temperature, and consult a doctor if fever continues.",
	},

	// Blood pressure
	{
		Keywords: []string{"what is blood pressure", "bp"},
		Answer:   "Blood pressure measures the force of blood pushing against artery walls.",
	},
	{
		Keywords: []string{"what is normal blood pressure", "normal bp"},
		Answer:   "Normal blood pressure is around 120 over 80 millimeters of mercury.",
	},
	{
		Keywords: []string{"what causes high blood pressure", "high bp"},
		Answer:   "Stress, excess salt intake, obesity, lack of exercise, and genetics can raise blood pressure.",
	},

	// Blood sugar
	{
		Keywords: []string{"what is blood sugar", "glucose"},
		Answer:   "Blood sugar refers to the level of glucose present in the blood.",
	},
	{
		Keywords: []string{"what is normal blood sugar", "normal glucose"},
		Answer:   "Normal fasting blood sugar levels are between 70 and 99 milligrams per deciliter.",
	},
	{
		Keywords: []string{"what are symptoms of high blood sugar", "high sugar"},
		Answer:   "Increased thirst, frequent urination, fatigue, and blurred vision.",
	},

	// ECG
	{
		Keywords: []string{"what is ecg", "ekg"},
		Answer:   "ECG records the electrical activity of the heart to monitor heart rhythm.",
	},
	{
		Keywords: []string{"why is ecg important"},
		Answer:   "ECG helps detect heart rhythm abnormalities and cardiac conditions.",
	},

	// Fitness
	{
		Keywords: []string{"why is exercise important"},
		Answer:   "Exercise improves heart health, strength, mental well-being, and overall fitness.",
	},
	{
		Keywords: []string{"how much exercise should i do"},
		Answer:   "Adults should aim for at least 30 minutes of moderate exercise daily.",
	},

	// Sleep
	{
		Keywords: []string{"why is sleep important"},
		Answer:   "Sleep helps the body recover, strengthens immunity, and improves focus.",
	},
	{
		Keywords: []string{"how many hours should i sleep"},
		Answer:   "Adults should sleep between 7 and 9 hours per night.",
	},

	// Mental health
	{
		Keywords: []string{"what is mental health"},
		Answer:   "Mental health refers to emotional, psychological, and social well-being.",
	},
	{
		Keywords: []string{"how can i reduce stress"},
		Answer:   "Exercise, meditation, proper sleep, and relaxation techniques can reduce stress.",
	},

	// Nutrition
	{
		Keywords: []string{"what is balanced diet"},
		Answer:   "A balanced diet includes carbohydrates, proteins, fats, vitamins, minerals, and water.",
	},
	{
		Keywords: []string{"how much water should i drink"},
		Answer:   "Most adults should drink around 2 to 3 liters of water daily.",
	},

	// Emergency
	{
		Keywords: []string{"what should i do in emergency", "emergency"},
		Answer:   "In a medical emergency, seek immediate professional medical help.",
	},

	// Assistant identity
	{
		Keywords: []string{"what can you do atlas", "what do you do"},
		Answer:   "I can answer health-related questions and help navigate this application.",
	},
	{
		Keywords: []string{"are you a doctor"},
		Answer:   "No. I am a virtual assistant that provides educational health information only.",
	},
	{
		Keywords: []string{"do you work offline"},
		Answer:   "Yes. I work completely offline without internet access.",
	},

	// Regional (Telugu) phrases
	{
		Keywords: []string{"namaskaram", "నమస్కారం"},
		Answer:   "Namaskaram! I am Atlas. Nenu ela sahayam cheyagalanu? (How can I help?)",
	},
	{
		Keywords: []string{"hrudaya", "gunde", "గుండె"},
		Answer:   "Heart Rate (Hrudaya Spandana) is the speed of the heartbeat. Normal is 60-100 bpm.",
	},
	{
		Keywords: []string{"arogyam"},
		Answer:   "Health is wealth. You can ask me about Heart Rate, BP, or Temperature.",
	},
	{
		Keywords: []string{"apada"},
		Answer:   "In case of emergency, please dial 108 or visit the nearest hospital immediately.",
	},
}

func lookup(text string) (string, bool) {
	t := strings.ToLower(text)
	for _, f := range facts {
		for _, kw := range f.Keywords {
			if strings.Contains(t, kw) {
				return f.Answer, true
			}
		}
	}
	return "", false
}
