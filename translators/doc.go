/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package translators ships faultx.Translator implementations for the
// storage and transport libraries faultx users commonly sit on top of.
//
// Each translator recognizes only its own backend's faults and declines
// everything else, so they can be combined freely in a chain. Defaults
// returns them in the recommended priority order: driver-specific
// translators first, generic context/network classification last.
//
// Translators never copy the backend's error text into Message; the
// original fault remains available as the Cause.
package translators
