package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	haas "github.com/iwtcode/haasAdapter"
	"github.com/joho/godotenv"
)

func main() {
	snapshot := flag.Bool("snapshot", false, "после статуса вывести полный снимок состояния в JSON")
	flag.Parse()

	// 1) Загрузка конфигурации
	if err := godotenv.Load("./.env"); err != nil {
		log.Printf("Warning: Could not load .env file. Using default values or environment variables: %v", err)
	}
	cfg := haas.Load()

	// 2) Открытие последовательного порта
	c, err := haas.New(cfg)
	if err != nil {
		log.Printf("Не удалось создать клиент Haas для %s: %v", cfg.SerialPort, err)
		os.Exit(1)
	}
	defer c.Close()

	// 3) Статус станка. Ошибка порта означает Offline, а не аварийное завершение.
	status, err := c.GetStatus()
	if err != nil {
		log.Printf("Предупреждение: станок не ответил на Q100: %v", err)
	}
	fmt.Printf("Machine Status: %s\n", status)

	if !*snapshot {
		return
	}

	// 4) Полный снимок состояния
	data, err := c.GetSnapshotJSON()
	if err != nil {
		log.Printf("Предупреждение: снимок собран с ошибкой: %v", err)
	}
	fmt.Println(string(data))
}
