package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/client"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/logger"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/sound"
	"github.com/DaveMajstro/osadnici-z-katanu/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:3000", "adresa serveru")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Printf("logger init failed: %v", err)
	}
	defer logger.Close()

	sounds := sound.NewManager()
	if err := sounds.Init(); err != nil {
		logger.LogError("sound init failed: %v", err)
	}
	defer sounds.Close()

	c := client.NewClient(fmt.Sprintf("ws://%s/ws", *serverAddr))
	if err := c.Connect(); err != nil {
		log.Fatalf("nelze se připojit k %s: %v", *serverAddr, err)
	}
	c.StartHeartbeat()

	p := tea.NewProgram(ui.NewModel(c, sounds), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("chyba klienta: %v", err)
	}
}
