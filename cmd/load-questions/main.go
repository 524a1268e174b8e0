package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"trivia-duel/internal/config"
	"trivia-duel/internal/db"

	"gorm.io/datatypes"
)

// questionRecord is one entry of the seed file: a JSON array of questions,
// each assigned to an existing user by username.
type questionRecord struct {
	Username     string   `json:"username"`
	Category     string   `json:"category"`
	Difficulty   string   `json:"difficulty"`
	Text         string   `json:"text"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Points       int      `json:"points"`
}

func main() {
	filePath := flag.String("file", "questions.json", "path to questions json")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	records, err := readQuestions(*filePath)
	if err != nil {
		log.Fatalf("failed to read questions: %v", err)
	}

	inserted := 0
	for _, record := range records {
		var owner db.User
		if err := conn.Where("username = ?", record.Username).First(&owner).Error; err != nil {
			log.Fatalf("unknown user %q: %v", record.Username, err)
		}
		choices, err := json.Marshal(record.Choices)
		if err != nil {
			log.Fatalf("failed to encode choices: %v", err)
		}
		entry := db.Question{
			OwnerID:      owner.ID,
			Category:     record.Category,
			Difficulty:   record.Difficulty,
			Text:         record.Text,
			Choices:      datatypes.JSON(choices),
			CorrectIndex: record.CorrectIndex,
			Points:       record.Points,
		}
		if err := conn.FirstOrCreate(&entry, db.Question{OwnerID: owner.ID, Text: record.Text}).Error; err != nil {
			log.Fatalf("failed to upsert question: %v", err)
		}
		inserted++
	}

	log.Printf("loaded %d questions", inserted)
}

func readQuestions(path string) ([]questionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []questionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
