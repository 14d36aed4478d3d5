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


// Package storage defines the persistence interfaces for the knowledge base.
//
// Two independent collections are maintained: the fact collection (immutable
// between full rebuilds) and the semantic query cache (append-mostly, with a
// single in-place revision per entry). Both are retrieved by vector
// similarity; the fact collection additionally supports structured metadata
// filters. The interfaces are backend-agnostic; storage/badger provides the
// BadgerDB implementation.
package storage
