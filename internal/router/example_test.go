package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/patric-chuzhbe/userdir/internal/models"
)

func ExampleRouter_GetPing() {
	server, _ := setupTestRouter(nil)
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/ping", nil)
	if err != nil {
		panic(err)
	}

	client := &http.Client{}

	resp, err := client.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	fmt.Println("Status Code:", resp.StatusCode)

	// Output:
	// Status Code: 200
}

func ExampleRouter_PostApiusers() {
	server, _ := setupTestRouter(nil)
	defer server.Close()

	body, err := json.Marshal(validPayload())
	if err != nil {
		panic(err)
	}

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/users", bytes.NewReader(body))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}

	resp, err := client.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var created models.User
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Println("ID:", created.ID)
	fmt.Println("Name:", created.Name)

	// Output:
	// Status Code: 201
	// ID: 1
	// Name: Patricia Lebsack
}

func ExampleRouter_PostApiusers_invalidEmail() {
	server, _ := setupTestRouter(nil)
	defer server.Close()

	body, err := json.Marshal(withField("foo@bar", "email"))
	if err != nil {
		panic(err)
	}

	resp, err := http.Post(server.URL+"/api/users", "application/json", bytes.NewReader(body))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Print("Body: ", string(b))

	// Output:
	// Status Code: 400
	// Body: {"error":"Invalid email format"}
}

func ExampleRouter_GetApiusers() {
	server, _ := setupTestRouter(nil, withSeed(models.User{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"}))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/users")
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var users []models.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Println("Users:", len(users))
	fmt.Println("First:", users[0].Name)

	// Output:
	// Status Code: 200
	// Users: 1
	// First: Leanne Graham
}
