// data.go
//
// A scalable, high performance scene directory and analytics service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of scenedir.
// scenedir is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// scenedir is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with scenedir.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package helpers

// SceneTreeDoc is a small Scenes subtree with two buildings and three scenes.
const SceneTreeDoc = `{
  "Campus": {
    "L1": {
      "s-100": {
        "sceneId": "s-100",
        "title": "Lobby",
        "imageUrl": "https://cdn.example.com/campus/l1/lobby.jpg",
        "blobKey": "Campus/L1/lobby.jpg",
        "personInCharge": "Kim",
        "lastUpdate": "2026-02-01T09:30:00Z"
      },
      "s-101": {
        "sceneId": "s-101",
        "title": "Atrium",
        "imageUrl": "https://cdn.example.com/campus/l1/atrium.jpg",
        "personInCharge": "Lee"
      }
    },
    "L2": {
      "s-200": {
        "sceneId": "s-200",
        "title": "Gallery",
        "imageUrl": "https://cdn.example.com/campus/l2/gallery.jpg"
      }
    }
  },
  "Annex": {
    "NA": {
      "s-300": {
        "sceneId": "s-300",
        "title": "Workshop"
      }
    }
  }
}`

// DailyCountersDoc holds per-day per-scene view counters across two months.
const DailyCountersDoc = `{
  "20240115": {"s-100": {"views": 3}, "s-200": {"views": 2}},
  "20240220": {"s-100": {"views": "4"}},
  "20240221": {"s-300": {"views": 1}}
}`

// GlobalTotalsDoc holds cumulative per-scene view totals.
const GlobalTotalsDoc = `{
  "s-100": {"title": "Lobby", "views": 42},
  "s-101": {"title": "Atrium", "views": 17},
  "s-200": {"title": "Gallery", "views": 99},
  "s-300": {"views": 5}
}`

// UsersDoc is a small account directory with one admin and one staff account.
const UsersDoc = `{
  "uid-admin": {"name": "Ada", "email": "ada@example.com", "role": "Admin"},
  "uid-staff": {"name": "Sam", "email": "sam@example.com", "role": "Staff"}
}`
