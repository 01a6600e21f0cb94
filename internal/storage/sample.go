package storage

import "github.com/letsssgooo/triviaQuiz/internal/domain/models"

// Встроенный набор вопросов для работы без сети.

var sampleCategories = []models.Category{
	{ID: models.CategoryScience, Name: "Science"},
	{ID: models.CategoryComputers, Name: "Computers"},
	{ID: models.CategoryHistory, Name: "History"},
}

var sampleQuestions = map[int][]models.RawQuestion{
	models.CategoryScience: {
		{
			Category:         "Science",
			Type:             "multiple",
			Difficulty:       "easy",
			Question:         "What is the closest planet to the Sun?",
			CorrectAnswer:    "Mercury",
			IncorrectAnswers: []string{"Venus", "Mars", "Earth"},
		},
		{
			Category:         "Science",
			Type:             "multiple",
			Difficulty:       "easy",
			Question:         "What is the chemical symbol for Gold?",
			CorrectAnswer:    "Au",
			IncorrectAnswers: []string{"Ag", "Fe", "Cu"},
		},
		{
			Category:         "Science",
			Type:             "multiple",
			Difficulty:       "medium",
			Question:         "What is the most abundant gas in Earth's atmosphere?",
			CorrectAnswer:    "Nitrogen",
			IncorrectAnswers: []string{"Oxygen", "Carbon Dioxide", "Argon"},
		},
		{
			Category:         "Science",
			Type:             "multiple",
			Difficulty:       "hard",
			Question:         "What is the SI unit of electrical capacitance?",
			CorrectAnswer:    "Farad",
			IncorrectAnswers: []string{"Henry", "Tesla", "Weber"},
		},
	},
	models.CategoryComputers: {
		{
			Category:         "Computers",
			Type:             "multiple",
			Difficulty:       "medium",
			Question:         "Which programming language is primarily used for Android development?",
			CorrectAnswer:    "Kotlin",
			IncorrectAnswers: []string{"Swift", "Python", "Ruby"},
		},
		{
			Category:         "Computers",
			Type:             "multiple",
			Difficulty:       "easy",
			Question:         "What does CPU stand for?",
			CorrectAnswer:    "Central Processing Unit",
			IncorrectAnswers: []string{"Central Program Utility", "Computer Personal Unit", "Core Processing Utility"},
		},
		{
			Category:         "Computers",
			Type:             "multiple",
			Difficulty:       "medium",
			Question:         "Which company created the Go programming language?",
			CorrectAnswer:    "Google",
			IncorrectAnswers: []string{"Microsoft", "Apple", "Mozilla"},
		},
		{
			Category:         "Computers",
			Type:             "multiple",
			Difficulty:       "hard",
			Question:         "How many bits are in an IPv6 address?",
			CorrectAnswer:    "128",
			IncorrectAnswers: []string{"32", "64", "256"},
		},
	},
	models.CategoryHistory: {
		{
			Category:         "History",
			Type:             "multiple",
			Difficulty:       "easy",
			Question:         "Who was the first President of the United States?",
			CorrectAnswer:    "George Washington",
			IncorrectAnswers: []string{"Thomas Jefferson", "John Adams", "Benjamin Franklin"},
		},
		{
			Category:         "History",
			Type:             "multiple",
			Difficulty:       "medium",
			Question:         "In which year did World War II end?",
			CorrectAnswer:    "1945",
			IncorrectAnswers: []string{"1943", "1944", "1946"},
		},
		{
			Category:         "History",
			Type:             "multiple",
			Difficulty:       "medium",
			Question:         "Which empire built Machu Picchu?",
			CorrectAnswer:    "Inca",
			IncorrectAnswers: []string{"Aztec", "Maya", "Olmec"},
		},
		{
			Category:         "History",
			Type:             "multiple",
			Difficulty:       "hard",
			Question:         "In which year was the Treaty of Westphalia signed?",
			CorrectAnswer:    "1648",
			IncorrectAnswers: []string{"1618", "1701", "1555"},
		},
	},
}
