package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// gp-setup walks an operator through first-run onboarding: it registers a
// super admin against a running server, logs in and creates the first
// gram panchayat.

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

type step int

const (
	stepEnteringName step = iota
	stepEnteringEmail
	stepEnteringMobile
	stepEnteringPassword
	stepRegistering
	stepLoggingIn
	stepEnteringGPName
	stepEnteringGPDistrict
	stepEnteringGPAddress
	stepCreatingGP
	stepComplete
)

type model struct {
	step         step
	baseURL      string
	name         string
	email        string
	mobile       string
	password     string
	authToken    string
	gpName       string
	gpDistrict   string
	gpAddress    string
	gpID         string
	currentInput string
	message      string
	quitting     bool
}

type registerSuccessMsg struct{}
type loginSuccessMsg struct{ token string }
type gpCreatedMsg struct{ id string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	baseURL := os.Getenv("SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3536"
	}
	return model{
		step:    stepEnteringName,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func postJSON(client *http.Client, url, token string, payload interface{}) (map[string]interface{}, error) {
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unexpected response (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if success, _ := result["success"].(bool); !success {
		message, _ := result["message"].(string)
		return nil, fmt.Errorf("%s", message)
	}

	return result, nil
}

func registerAdmin(baseURL, name, email, mobile, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"name":     name,
			"email":    email,
			"mobile":   mobile,
			"password": password,
			"role":     "super_admin",
		}

		if _, err := postJSON(client, baseURL+"/api/v1/auth/register", "", payload); err != nil {
			return errMsg{err}
		}
		return registerSuccessMsg{}
	}
}

func loginAdmin(baseURL, email, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"email":    email,
			"password": password,
		}

		result, err := postJSON(client, baseURL+"/api/v1/auth/login", "", payload)
		if err != nil {
			return errMsg{err}
		}

		data, _ := result["data"].(map[string]interface{})
		token, _ := data["token"].(string)
		if token == "" {
			return errMsg{fmt.Errorf("login succeeded but no token returned")}
		}
		return loginSuccessMsg{token: token}
	}
}

func createGP(baseURL, token, name, district, address string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"name":     name,
			"district": district,
			"address":  address,
		}

		result, err := postJSON(client, baseURL+"/api/v1/gram-panchayats", token, payload)
		if err != nil {
			return errMsg{err}
		}

		data, _ := result["data"].(map[string]interface{})
		id, _ := data["id"].(string)
		return gpCreatedMsg{id: id}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		default:
			switch m.step {
			case stepEnteringName, stepEnteringEmail, stepEnteringMobile, stepEnteringPassword,
				stepEnteringGPName, stepEnteringGPDistrict, stepEnteringGPAddress:
				if len(msg.String()) == 1 || msg.String() == " " {
					m.currentInput += msg.String()
				}
			}

		case "enter":
			switch m.step {
			case stepEnteringName:
				if m.currentInput != "" {
					m.name = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringEmail
				}

			case stepEnteringEmail:
				if m.currentInput != "" {
					m.email = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringMobile
				}

			case stepEnteringMobile:
				m.mobile = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringPassword

			case stepEnteringPassword:
				if m.currentInput != "" {
					m.password = m.currentInput
					m.currentInput = ""
					m.step = stepRegistering
					m.message = "Registering super admin..."
					return m, registerAdmin(m.baseURL, m.name, m.email, m.mobile, m.password)
				}

			case stepEnteringGPName:
				if m.currentInput != "" {
					m.gpName = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringGPDistrict
				}

			case stepEnteringGPDistrict:
				m.gpDistrict = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringGPAddress

			case stepEnteringGPAddress:
				m.gpAddress = m.currentInput
				m.currentInput = ""
				m.step = stepCreatingGP
				m.message = "Creating gram panchayat..."
				return m, createGP(m.baseURL, m.authToken, m.gpName, m.gpDistrict, m.gpAddress)

			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}
		}

	case registerSuccessMsg:
		m.step = stepLoggingIn
		m.message = successStyle.Render("Registered " + m.email)
		return m, loginAdmin(m.baseURL, m.email, m.password)

	case loginSuccessMsg:
		m.authToken = msg.token
		m.step = stepEnteringGPName
		m.message = successStyle.Render("Logged in as " + m.email)

	case gpCreatedMsg:
		m.gpID = msg.id
		m.step = stepComplete
		m.message = successStyle.Render("Gram panchayat created: " + msg.id)

	case errMsg:
		m.message = errorStyle.Render("Error: " + msg.err.Error())
		// Back to the start of whichever phase failed.
		if m.authToken == "" {
			m.step = stepEnteringName
		} else {
			m.step = stepEnteringGPName
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Water Billing Setup Tool\n\n"))
	if m.message != "" {
		s.WriteString(m.message + "\n\n")
	}

	switch m.step {
	case stepEnteringName:
		s.WriteString(promptStyle.Render("Admin name:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter (Ctrl+C to quit)\n")

	case stepEnteringEmail:
		s.WriteString(promptStyle.Render("Admin email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringMobile:
		s.WriteString(promptStyle.Render("Admin mobile (optional):\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Admin password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("*", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepRegistering, stepLoggingIn, stepCreatingGP:
		s.WriteString("Working...\n")

	case stepEnteringGPName:
		s.WriteString(promptStyle.Render("Gram panchayat name:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringGPDistrict:
		s.WriteString(promptStyle.Render("District (optional):\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringGPAddress:
		s.WriteString(promptStyle.Render("Address (optional):\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepComplete:
		s.WriteString("Setup complete. Register gp_admin users with gramPanchayat=" + m.gpID + "\n")
		s.WriteString("\nPress Enter to exit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
