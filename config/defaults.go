// Copyright 2025 The Pathfinder Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

// Default creates a configuration populated with the built-in
// Catanduanes defaults. A config file or environment variables
// override individual fields.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: "data/pathfinder.db",
		},
		Dataset: DatasetConfig{
			Path: "data/dataset.json",
		},
		AI: AIConfig{
			EmbeddingHost:  "http://localhost:11434/v1",
			RewriteHost:    "http://localhost:11434/v1",
			EmbeddingModel: "embeddinggemma",
			RewriteModel:   "qwen2.5:3b",
			Token:          "none",
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				MaxRequests:   5,
				PeriodSeconds: 60,
			},
		},
		Cache: CacheConfig{
			SimilarityThreshold: 0.88,
		},
		Retrieval: RetrievalConfig{
			MinSimilaritySpecific: 0.60,
			MinSimilarityListing:  0.30,
			SpecificCandidates:    10,
			ListingCandidates:     20,
			SpecificKeep:          3,
			ListingKeep:           10,
			MaxPlaces:             5,
		},
		Intent: IntentConfig{
			KeywordThreshold:      0.82,
			KeywordThresholdShort: 0.75,
			MaxConsonantRun:       5,
		},
		Geo: GeoConfig{
			SemanticThreshold: 0.85,
			FuzzyThreshold:    0.80,
		},
		Enhancer: EnhancerConfig{
			QueueSize:      4096,
			TimeoutSeconds: 8,
		},
		Translate: TranslateConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Keywords:        defaultKeywords(),
		Places:          defaultPlaces(),
		Profanity:       defaultProfanity(),
		ProtectedPlaces: defaultProtectedPlaces(),
		Messages: MessagesConfig{
			RateLimited: "You are sending messages too fast! Please wait %d seconds.",
			Profanity:   "I am unable to process that language. Please ask politely about Catanduanes tourism.",
			Greeting:    "Hello! I'm Pathfinder, your Catanduanes tourism guide. Ask me about beaches, food, activities, or where to stay!",
			Nonsense:    "I'm sorry, I didn't understand that. Try asking about beaches, surfing, food, accommodations, or activities in Catanduanes!",
			NoInfo:      "I don't have information about that. Ask about beaches, food, or activities in Catanduanes!",
			Fallback:    "Something went wrong on my end. Please try asking again in a moment.",
		},
	}
}

// Municipalities lists every municipality of the province, lowercase.
// The order puts multi-word names last so substring scans prefer them.
var Municipalities = []string{
	"virac", "baras", "pandan", "bato", "gigmoto", "viga",
	"bagamanoc", "caramoran", "panganiban",
	"san andres", "san miguel",
}

// TownHints maps implicit landmark words to the municipality they imply.
// Used only when no municipality was named outright.
var TownHints = map[string]string{
	"airport":       "Virac",
	"downtown":      "Virac",
	"capital":       "Virac",
	"town center":   "Virac",
	"public market": "Virac",
	"cathedral":     "Virac",
	"seaport":       "San Andres",
	"ferry port":    "San Andres",
}

func defaultKeywords() map[string][]string {
	return map[string][]string{
		"beaches": {
			"beach", "beaches", "swimming", "shore", "coast",
			"sand", "island hopping", "snorkeling",
		},
		"surfing": {
			"surf", "surfing", "waves", "surf camp", "board rental",
		},
		"food": {
			"food", "restaurant", "eat", "dining", "delicacies",
			"seafood", "cuisine", "breakfast", "coffee",
		},
		"accommodation": {
			"hotel", "resort", "homestay", "stay", "lodging",
			"accommodation", "room", "inn",
		},
		"activities": {
			"hiking", "trek", "trekking", "tour", "itinerary",
			"activities", "adventure", "camping", "spelunking",
		},
		"travel": {
			"travel", "trip", "visit", "vacation", "transportation",
			"fare", "route", "ferry", "flight", "tricycle",
		},
		"sights": {
			"waterfall", "falls", "lighthouse", "viewpoint", "cave",
			"church", "heritage", "sunrise", "lagoon",
		},
	}
}

func defaultPlaces() map[string]PlaceConfig {
	return map[string]PlaceConfig{
		"Puraran Beach":    {Lat: 13.6633, Lng: 124.3933, Category: "beach", Municipality: "Baras"},
		"Binurong Point":   {Lat: 13.6519, Lng: 124.4011, Category: "viewpoint", Municipality: "Baras"},
		"Balacay Point":    {Lat: 13.6561, Lng: 124.3986, Category: "viewpoint", Municipality: "Baras"},
		"Maribina Falls":   {Lat: 13.6064, Lng: 124.3042, Category: "waterfall", Municipality: "Bato"},
		"Bato Church":      {Lat: 13.6036, Lng: 124.2989, Category: "church", Municipality: "Bato"},
		"Bote Lighthouse":  {Lat: 13.5892, Lng: 124.3289, Category: "lighthouse", Municipality: "Bato"},
		"Twin Rock Beach":  {Lat: 13.5553, Lng: 124.2806, Category: "beach", Municipality: "Virac"},
		"Mamangal Beach":   {Lat: 13.5469, Lng: 124.2331, Category: "beach", Municipality: "Virac"},
		"Marilima Beach":   {Lat: 13.5511, Lng: 124.2692, Category: "beach", Municipality: "Virac"},
		"Luyang Cave":      {Lat: 13.5986, Lng: 124.0975, Category: "cave", Municipality: "San Andres"},
		"Toytoy Beach":     {Lat: 13.9842, Lng: 124.1328, Category: "beach", Municipality: "Caramoran"},
		"Carangyan Beach":  {Lat: 14.0447, Lng: 124.1697, Category: "beach", Municipality: "Pandan"},
		"Nahulugan Falls":  {Lat: 13.7781, Lng: 124.3308, Category: "waterfall", Municipality: "Gigmoto"},
		"Poseidon Rock":    {Lat: 13.6644, Lng: 124.3956, Category: "viewpoint", Municipality: "Baras"},
		"Virac":            {Lat: 13.5791, Lng: 124.2323, Category: "municipality", Municipality: "Virac"},
		"Baras":            {Lat: 13.6581, Lng: 124.3683, Category: "municipality", Municipality: "Baras"},
		"Bato":             {Lat: 13.6031, Lng: 124.2994, Category: "municipality", Municipality: "Bato"},
		"Pandan":           {Lat: 14.0456, Lng: 124.1692, Category: "municipality", Municipality: "Pandan"},
		"Gigmoto":          {Lat: 13.7792, Lng: 124.3900, Category: "municipality", Municipality: "Gigmoto"},
		"San Andres":       {Lat: 13.5986, Lng: 124.0986, Category: "municipality", Municipality: "San Andres"},
		"Caramoran":        {Lat: 13.9847, Lng: 124.1342, Category: "municipality", Municipality: "Caramoran"},
		"Viga":             {Lat: 13.8742, Lng: 124.2956, Category: "municipality", Municipality: "Viga"},
		"Bagamanoc":        {Lat: 13.9406, Lng: 124.2886, Category: "municipality", Municipality: "Bagamanoc"},
		"Panganiban":       {Lat: 13.9097, Lng: 124.3000, Category: "municipality", Municipality: "Panganiban"},
		"San Miguel":       {Lat: 13.6481, Lng: 124.3019, Category: "municipality", Municipality: "San Miguel"},
	}
}

func defaultProfanity() []string {
	return []string{
		"gago", "tanga", "bobo", "punyeta", "bwisit",
		"tarantado", "ulol", "leche",
	}
}

func defaultProtectedPlaces() []string {
	return []string{
		"Catanduanes", "Puraran", "Binurong", "Balacay", "Maribina",
		"Bato", "Virac", "Baras", "Gigmoto", "Pandan", "Caramoran",
		"Viga", "Bagamanoc", "Panganiban", "Mamangal", "Marilima",
		"Luyang", "Toytoy", "Carangyan", "Nahulugan", "Twin Rock",
	}
}
