package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/xfgryujk/mml2beep/mml"
	"github.com/xfgryujk/mml2beep/version"
)

func handleParse(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")

	// Handle pre-flight OPTIONS request
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return
	}

	var input map[string]interface{}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		http.Error(w, "Invalid JSON input", http.StatusBadRequest)
		return
	}

	score, ok := input["mml"].(string)
	if !ok {
		http.Error(w, "Invalid JSON input: mml is missing or not a string", http.StatusBadRequest)
		return
	}

	song, err := mml.Parse(score)
	if err != nil {
		// the parse error already carries the line and column
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload interface{} = song
	if trackParam := r.URL.Query().Get("track"); trackParam != "" {
		num, err := strconv.Atoi(trackParam)
		if err != nil || num < 1 || num > len(song.Tracks) {
			http.Error(w, fmt.Sprintf("track should be a number between 1 and %v", len(song.Tracks)), http.StatusBadRequest)
			return
		}
		payload = song.Tracks[num-1]
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(payload)
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("mml2beep server. POST an MML score to /parse to compile it."))
}

func main() {
	addr := flag.String("addr", ":10000", "Address to listen on.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}

	// Set up router and server
	router := mux.NewRouter()
	router.HandleFunc("/parse", handleParse).Methods("POST", "OPTIONS")
	router.HandleFunc("/", handleRoot).Methods("GET")
	http.Handle("/", router)

	fmt.Printf("Starting server on %s\n", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		os.Exit(1)
	}
}
