// Copyright (c) 2016-2019 Uber Technologies, Inc.
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
package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTrackerURL(t *testing.T) {
	tests := []struct {
		url      string
		protocol Protocol
	}{
		{"http://tracker.example.com/announce", HTTP},
		{"https://tracker.example.com/announce", HTTP},
		{"udp://tracker.example.com:6969/announce", UDP},
	}
	for _, test := range tests {
		t.Run(test.url, func(t *testing.T) {
			require := require.New(t)
			turl, err := ParseTrackerURL(test.url)
			require.NoError(err)
			require.Equal(test.protocol, turl.Protocol)
			require.Equal(test.url, turl.URL)
		})
	}
}

func TestParseTrackerURLRejectsUnsupportedScheme(t *testing.T) {
	require := require.New(t)

	_, err := ParseTrackerURL("ftp://tracker.example.com/announce")
	require.Error(err)
}

func TestTrackerURLHostStripsPort(t *testing.T) {
	require := require.New(t)

	turl, err := ParseTrackerURL("udp://tracker.example.com:6969/announce")
	require.NoError(err)

	host, err := turl.Host()
	require.NoError(err)
	require.Equal("tracker.example.com", host)
}

func TestTrackerURLHostToleratesBareHost(t *testing.T) {
	require := require.New(t)

	turl, err := ParseTrackerURL("http://tracker.example.com/announce")
	require.NoError(err)

	host, err := turl.Host()
	require.NoError(err)
	require.Equal("tracker.example.com", host)
}
