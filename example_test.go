// Copyright 2026 the original author or authors.
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

package tagdiff_test

import (
	"fmt"
	"log"
	"os"
	"time"

	"m4o.io/tagdiff"
	"m4o.io/tagdiff/model"
)

func Example() {
	ts := time.Date(2020, 3, 14, 9, 26, 53, 0, time.UTC)

	history := []model.Version{
		{
			Kind: model.NODE, ID: 123, Version: 1, Visible: true,
			Timestamp: ts, Changeset: 42, UID: 7, User: "mapper",
			Tags: model.Tags{"place": "city", "name": "Nice City"},
		},
		{
			Kind: model.NODE, ID: 123, Version: 2, Visible: true,
			Timestamp: ts.Add(time.Hour), Changeset: 43, UID: 7, User: "mapper",
			Tags: model.Tags{"place": "city", "name": "Nice City", "population": "1000000"},
		},
	}

	projector, err := tagdiff.NewProjector("key", "new_value", "old_value", "id", "new_version", "old_version")
	if err != nil {
		log.Fatal(err)
	}

	rows, err := tagdiff.NewRowWriter(os.Stdout, tagdiff.DefaultDelimiter)
	if err != nil {
		log.Fatal(err)
	}

	differ := tagdiff.NewDiffer()

	for _, v := range history {
		changes, err := differ.Process(v)
		if err != nil {
			log.Fatal(err)
		}

		for _, c := range changes {
			if err := rows.WriteRow(projector.Project(c, nil)); err != nil {
				log.Fatal(err)
			}
		}
	}

	if err := rows.Flush(); err != nil {
		log.Fatal(err)
	}

	fmt.Println("done")
	// Output:
	// name,Nice City,,n123,1,
	// place,city,,n123,1,
	// population,1000000,,n123,2,1
	// done
}
