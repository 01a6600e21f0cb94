package models

import "strings"

// Модели вопросов, общие для источников (HTTP, память, БД) и движка сессии.
// Источники отдают RawQuestion как есть, движок нормализует их в Question.

// Difficulty — сложность вопроса.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Difficulties — все уровни сложности в порядке возрастания.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty переводит метку провайдера (easy/medium/hard, регистр не важен)
// в Difficulty. Второе значение false, если метка не распознана.
func ParseDifficulty(label string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	default:
		return DifficultyMedium, false
	}
}

// Label возвращает метку в формате провайдера ("easy", "medium", "hard").
func (d Difficulty) Label() string {
	return strings.ToLower(string(d))
}

// CategoryUnassigned — категория вопроса, для которой нет сопоставления.
const CategoryUnassigned = 0

// RawQuestion — запись вопроса в том виде, в каком её отдаёт источник.
type RawQuestion struct {
	Category         string
	Type             string
	Difficulty       string
	Question         string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// Question — нормализованный вопрос сессии. Значение неизменяемо после создания:
// Options уже перемешаны, CorrectIdx указывает на позицию после перемешивания.
type Question struct {
	ID          int
	Text        string
	Options     []string
	CorrectIdx  int
	Difficulty  Difficulty
	CategoryID  int
	Explanation string
}

// IsCorrect сообщает, является ли answerIdx правильным ответом.
func (q Question) IsCorrect(answerIdx int) bool {
	return answerIdx == q.CorrectIdx
}

// Category — категория вопросов провайдера.
type Category struct {
	ID   int
	Name string
}

// Категории Open Trivia DB.
const (
	CategoryGeneralKnowledge = 9
	CategoryScience          = 17
	CategoryComputers        = 18
	CategoryMathematics      = 19
	CategoryMythology        = 20
	CategorySports           = 21
	CategoryGeography        = 22
	CategoryHistory          = 23
	CategoryPolitics         = 24
	CategoryArt              = 25
)

// Categories — каталог категорий в порядке отображения.
var Categories = []Category{
	{ID: CategoryGeneralKnowledge, Name: "General Knowledge"},
	{ID: CategoryScience, Name: "Science"},
	{ID: CategoryComputers, Name: "Computers"},
	{ID: CategoryMathematics, Name: "Mathematics"},
	{ID: CategoryMythology, Name: "Mythology"},
	{ID: CategorySports, Name: "Sports"},
	{ID: CategoryGeography, Name: "Geography"},
	{ID: CategoryHistory, Name: "History"},
	{ID: CategoryPolitics, Name: "Politics"},
	{ID: CategoryArt, Name: "Art"},
}

// CategoryByName ищет категорию по названию без учёта регистра.
func CategoryByName(name string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}

	return Category{}, false
}
